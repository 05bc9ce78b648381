package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vango-dev/gridcell/pkg/vdom"
)

// RootID is the id of the element that wraps the page body. Updates
// pushed over the socket replace its contents.
const RootID = "gc-root"

// DefaultStyles is the stylesheet used when PageData.Styles is empty.
const DefaultStyles = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table.gc-grid{border-collapse:collapse;min-width:40rem}
.gc-grid th,.gc-grid td{border:1px solid #ddd;padding:4px 8px;max-width:16rem;text-align:left}
.gc-grid th{background:#f4f4f4}
.gc-grid tr.gc-row-group td{background:#eef2ff}
.gc-icon{width:16px;height:16px;vertical-align:middle}
.gc-button{cursor:pointer}`

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Styles contains inline CSS. DefaultStyles is used when empty.
	Styles []string

	// SocketPath is the WebSocket endpoint the page script connects to.
	// No script is emitted when empty, which yields a static page.
	SocketPath string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<body>\n<div id=\"%s\">", RootID); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}
	if err := r.renderClientScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"+
		"  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	styles := page.Styles
	if len(styles) == 0 {
		styles = []string{DefaultStyles}
	}
	for _, style := range styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

// clientScript forwards clicks on marked elements over the socket and
// swaps the root contents when the server pushes an update.
const clientScript = `(function(){
var root=document.getElementById(%[1]s);
var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+%[2]s);
document.addEventListener("click",function(e){
var el=e.target.closest("[data-hid][data-on-click]");
if(!el||ws.readyState!==1)return;
ws.send(JSON.stringify({type:"click",hid:el.getAttribute("data-hid")}));
});
ws.onmessage=function(m){
var msg=JSON.parse(m.data);
if(msg.type==="update"){root.innerHTML=msg.html;}
else if(msg.type==="error"){console.error(msg.code,msg.message);}
};
})();`

// renderClientScript injects the event bridge when a socket is configured.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	if page.SocketPath == "" {
		return nil
	}
	// json.Marshal escapes <, > and & so the values cannot close the tag.
	rootID, err := json.Marshal(RootID)
	if err != nil {
		return err
	}
	path, err := json.Marshal(page.SocketPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "<script>"+clientScript+"</script>\n", rootID, path)
	return err
}
