package grid

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/middleware"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

// Option configures a Grid.
type Option func(*Grid)

// WithRegistry sets the variant registry. Default: cell.DefaultRegistry().
func WithRegistry(reg *cell.Registry) Option {
	return func(g *Grid) {
		g.registry = reg
	}
}

// WithMetrics records grid activity on m.
func WithMetrics(m *middleware.Metrics) Option {
	return func(g *Grid) {
		g.metrics = m
	}
}

// WithLogger sets the logger. Default: slog.Default() scoped to "grid".
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		g.logger = logger
	}
}

// WithCaption adds a table caption.
func WithCaption(caption string) Option {
	return func(g *Grid) {
		g.caption = caption
	}
}

type cellKey struct {
	row   string
	field string
}

// Grid hosts renderer instances for a set of rows.
type Grid struct {
	registry *cell.Registry
	metrics  *middleware.Metrics
	logger   *slog.Logger
	caption  string

	columns []column
	rows    []*cell.RowNode
	index   map[string]int
	cells   map[cellKey]cell.Renderer

	listener cell.Listener
	handlers map[string]any

	renders    uint64
	dispatches uint64
}

// New creates a grid with the given columns. It fails when the columns
// are empty, repeat a field or name an unknown renderer.
func New(cols []ColumnDef, opts ...Option) (*Grid, error) {
	g := &Grid{
		index:    make(map[string]int),
		cells:    make(map[cellKey]cell.Renderer),
		handlers: make(map[string]any),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = cell.DefaultRegistry()
	}
	if g.logger == nil {
		g.logger = slog.Default().With("component", "grid")
	}

	columns, err := resolveColumns(cols, g.registry)
	if err != nil {
		return nil, err
	}
	g.columns = columns
	return g, nil
}

// Columns returns the column definitions.
func (g *Grid) Columns() []ColumnDef {
	out := make([]ColumnDef, len(g.columns))
	for i, c := range g.columns {
		out[i] = c.def
	}
	return out
}

// SetRows replaces the grid's rows. Cells of rows that were already
// present keep their renderer instances; new rows are mounted and
// removed rows are destroyed. On error the grid is left unchanged.
func (g *Grid) SetRows(rows []cell.RowNode) error {
	next := make([]*cell.RowNode, len(rows))
	index := make(map[string]int, len(rows))
	for i := range rows {
		row := rows[i]
		if row.ID == "" {
			row.ID = fmt.Sprintf("row-%d", i)
		}
		if _, dup := index[row.ID]; dup {
			return errors.New("E204").WithDetailf("Row ID %q appears more than once.", row.ID)
		}
		row.Data = cloneData(row.Data)
		index[row.ID] = i
		next[i] = &row
	}

	cells := make(map[cellKey]cell.Renderer, len(next)*len(g.columns))
	var mounted []cell.Renderer
	for _, row := range next {
		for _, col := range g.columns {
			key := cellKey{row: row.ID, field: col.def.Field}
			if inst, ok := g.cells[key]; ok {
				cells[key] = inst
				continue
			}
			inst, err := g.mount(row, col)
			if err != nil {
				destroyAll(mounted)
				return err
			}
			mounted = append(mounted, inst)
			cells[key] = inst
		}
	}

	removed := 0
	for key, inst := range g.cells {
		if _, keep := cells[key]; !keep {
			destroy(inst)
			removed++
		}
	}
	if removed > 0 {
		// Handlers of destroyed instances must not be reachable by HID.
		g.handlers = nil
	}

	g.rows = next
	g.index = index
	g.cells = cells
	g.logger.Debug("rows set", "rows", len(next), "mounted", len(mounted))
	return nil
}

// Row returns a copy of the row with the given ID.
func (g *Grid) Row(id string) (cell.RowNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return cell.RowNode{}, false
	}
	return copyRow(g.rows[i]), true
}

// Rows returns copies of all rows in display order.
func (g *Grid) Rows() []cell.RowNode {
	out := make([]cell.RowNode, len(g.rows))
	for i, r := range g.rows {
		out[i] = copyRow(r)
	}
	return out
}

// Instance returns the renderer mounted for a cell.
func (g *Grid) Instance(rowID, field string) (cell.Renderer, bool) {
	inst, ok := g.cells[cellKey{row: rowID, field: field}]
	return inst, ok
}

// SetCell updates one value. The mounted instance is kept; the next
// Render passes it the new value.
func (g *Grid) SetCell(rowID, field string, value any) error {
	row, err := g.row(rowID)
	if err != nil {
		return err
	}
	if _, ok := g.column(field); !ok {
		return errors.New("E205").WithDetailf("Column %q is not defined.", field)
	}
	row.Data[field] = value
	return nil
}

// SetGroup changes a row's group flag. Mounted instances keep the
// choice they made at mount until Remount is called.
func (g *Grid) SetGroup(rowID string, group bool) error {
	row, err := g.row(rowID)
	if err != nil {
		return err
	}
	row.Group = group
	return nil
}

// Remount destroys and re-creates every renderer instance in a row, so
// mount-time choices are recomputed from the current row.
func (g *Grid) Remount(rowID string) error {
	row, err := g.row(rowID)
	if err != nil {
		return err
	}

	fresh := make(map[cellKey]cell.Renderer, len(g.columns))
	var mounted []cell.Renderer
	for _, col := range g.columns {
		inst, err := g.mount(row, col)
		if err != nil {
			destroyAll(mounted)
			return err
		}
		mounted = append(mounted, inst)
		fresh[cellKey{row: row.ID, field: col.def.Field}] = inst
	}
	for key, inst := range fresh {
		destroy(g.cells[key])
		g.cells[key] = inst
	}
	g.handlers = nil
	g.logger.Debug("row remounted", "row", rowID, "group", row.Group)
	return nil
}

// OnClick registers the listener that receives click events from every
// interactive cell. Passing nil removes it.
func (g *Grid) OnClick(fn cell.Listener) {
	g.listener = fn
}

// Render builds the table and assigns hydration IDs to interactive
// elements. Handlers from the previous render are discarded.
func (g *Grid) Render() *vdom.VNode {
	return g.RenderContext(context.Background())
}

// RenderContext is Render with a parent context for tracing.
func (g *Grid) RenderContext(ctx context.Context) *vdom.VNode {
	_, span := middleware.StartSpan(ctx, "grid.render",
		attribute.Int("gridcell.rows", len(g.rows)),
		attribute.Int("gridcell.columns", len(g.columns)),
	)
	start := time.Now()

	head := make([]*vdom.VNode, len(g.columns))
	for i, col := range g.columns {
		head[i] = vdom.Th(vdom.Scope("col"), vdom.Data("field", col.def.Field), col.def.Title())
	}

	body := make([]*vdom.VNode, len(g.rows))
	for i, row := range g.rows {
		tds := make([]*vdom.VNode, len(g.columns))
		for j, col := range g.columns {
			tds[j] = vdom.Td(
				vdom.Data("field", col.def.Field),
				g.cells[cellKey{row: row.ID, field: col.def.Field}].Render(g.context(row, col)),
			)
		}
		body[i] = vdom.Tr(
			vdom.Key(row.ID),
			vdom.Data("row", row.ID),
			vdom.ClassIf(row.Group, "gc-row-group"),
			tds,
		)
	}

	var caption *vdom.VNode
	if g.caption != "" {
		caption = vdom.Caption(g.caption)
	}
	table := vdom.Table(
		vdom.Class("gc-grid"),
		caption,
		vdom.Thead(vdom.Tr(head)),
		vdom.Tbody(body),
	)

	vdom.AssignHIDs(table, vdom.NewHIDGenerator())
	g.handlers = vdom.CollectHandlers(table)
	g.renders++

	g.metrics.ObserveRender(time.Since(start))
	span.SetAttributes(attribute.Int("gridcell.handlers", len(g.handlers)))
	middleware.EndSpan(span, nil)
	return table
}

// Dispatch clicks the element rendered with the given hydration ID in
// the most recent Render.
func (g *Grid) Dispatch(hid string) error {
	return g.DispatchContext(context.Background(), hid)
}

// DispatchContext is Dispatch with a parent context for tracing.
func (g *Grid) DispatchContext(ctx context.Context, hid string) (err error) {
	_, span := middleware.StartSpan(ctx, "grid.dispatch", attribute.String("gridcell.hid", hid))
	defer func() {
		if err != nil {
			g.metrics.RecordDispatchError(err)
		}
		middleware.EndSpan(span, err)
	}()

	handler, ok := g.handlers[hid+"_onclick"]
	if !ok {
		g.logger.Warn("handler not found", "hid", hid)
		return errors.New("E202").WithDetailf("No click handler for %q.", hid)
	}
	g.dispatches++
	return g.safeExecute(hid, handler)
}

// safeExecute runs a click handler with panic recovery.
func (g *Grid) safeExecute(hid string, handler any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("handler panic", "hid", hid, "panic", r)
			err = errors.New("E206").Wrap(fmt.Errorf("%v", r)).WithDetailf("Handler for %q panicked: %v", hid, r)
		}
	}()

	switch h := handler.(type) {
	case func():
		h()
	case func(any):
		h(nil)
	default:
		return errors.New("E202").WithDetailf("Handler for %q has unsupported type %T.", hid, handler)
	}
	return nil
}

// Stats summarizes the grid's state.
type Stats struct {
	Rows        int
	Columns     int
	Mounted     int
	Interactive int
	Handlers    int
	Renders     uint64
	Dispatches  uint64
}

// Stats returns counts for diagnostics.
func (g *Grid) Stats() Stats {
	interactive := 0
	for _, inst := range g.cells {
		if _, ok := inst.(cell.Interactive); ok {
			interactive++
		}
	}
	return Stats{
		Rows:        len(g.rows),
		Columns:     len(g.columns),
		Mounted:     len(g.cells),
		Interactive: interactive,
		Handlers:    len(g.handlers),
		Renders:     g.renders,
		Dispatches:  g.dispatches,
	}
}

// Close destroys every renderer instance and clears the rows.
func (g *Grid) Close() {
	for _, inst := range g.cells {
		destroy(inst)
	}
	g.rows = nil
	g.index = make(map[string]int)
	g.cells = make(map[cellKey]cell.Renderer)
	g.handlers = make(map[string]any)
}

func (g *Grid) row(id string) (*cell.RowNode, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, errors.New("E203").WithDetailf("Row %q does not exist.", id)
	}
	return g.rows[i], nil
}

func (g *Grid) column(field string) (column, bool) {
	for _, c := range g.columns {
		if c.def.Field == field {
			return c, true
		}
	}
	return column{}, false
}

func (g *Grid) context(row *cell.RowNode, col column) cell.Context {
	return cell.Context{
		Value:  row.Data[col.def.Field],
		Node:   row,
		Column: col.def.Field,
		Params: col.params,
	}
}

// mount creates the instance for one cell and wires its events.
func (g *Grid) mount(row *cell.RowNode, col column) (cell.Renderer, error) {
	name := col.variant.Name()
	inst, err := col.variant.Mount(g.context(row, col))
	if err != nil {
		g.metrics.RecordMountError(name)
		e := errors.New("E201").Wrap(err).
			WithDetailf("Column %q (renderer %q) could not mount row %q: %v", col.def.Field, name, row.ID, err)
		if stderrors.Is(err, cell.ErrMissingConfig) {
			e = e.WithSuggestion("Add the missing parameter to the column's params.")
		}
		return nil, e
	}
	if inst == nil {
		g.metrics.RecordMountError(name)
		return nil, errors.New("E201").WithDetailf("Renderer %q returned no instance.", name)
	}
	if ir, ok := inst.(cell.Interactive); ok {
		ir.OnInteraction(g.emit)
	}
	g.metrics.RecordMount(name)
	return inst, nil
}

// emit forwards a renderer's event to the grid listener.
func (g *Grid) emit(e cell.ClickEvent) {
	g.metrics.RecordInteraction(e.Column)
	g.logger.Debug("cell clicked", "row", e.RowID, "column", e.Column)
	if g.listener != nil {
		g.listener(e)
	}
}

func destroy(inst cell.Renderer) {
	if d, ok := inst.(cell.Destroyer); ok {
		d.Destroy()
	}
}

func destroyAll(insts []cell.Renderer) {
	for _, inst := range insts {
		destroy(inst)
	}
}

// copyRow returns a row that shares no data map with the grid.
func copyRow(r *cell.RowNode) cell.RowNode {
	out := *r
	out.Data = cloneData(r.Data)
	return out
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return make(map[string]any)
	}
	return maps.Clone(data)
}
