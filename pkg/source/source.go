// Package source loads grid rows from local files or S3.
//
// Row documents are a list of rows in JSON (comments and trailing commas
// allowed) or YAML:
//
//	[
//	  {"id": "r1", "group": false, "data": {"name": "Apple", "stars": 3}},
//	]
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
)

// MaxDocumentSize bounds the bytes read from any source.
const MaxDocumentSize = 32 << 20

// ObjectGetter is the subset of the S3 client used for loading.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures Load.
type Options struct {
	// Region is the S3 region (default "us-east-1").
	Region string

	// Endpoint overrides the S3 endpoint, e.g. for MinIO. Setting it
	// switches to path-style addressing.
	Endpoint string

	// Client replaces the S3 client built from Region and Endpoint.
	Client ObjectGetter
}

// Option configures Load.
type Option func(*Options)

// WithRegion sets the S3 region.
func WithRegion(region string) Option {
	return func(o *Options) {
		o.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.Endpoint = endpoint
	}
}

// WithClient sets the S3 client.
func WithClient(c ObjectGetter) Option {
	return func(o *Options) {
		o.Client = c
	}
}

// Load reads rows from uri: a local path, a file:// URL or s3://bucket/key.
func Load(ctx context.Context, uri string, opts ...Option) ([]cell.RowNode, error) {
	o := Options{Region: "us-east-1"}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		data []byte
		name string
		err  error
	)
	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, perr := ParseS3URI(uri)
		if perr != nil {
			return nil, perr
		}
		data, err = readS3(ctx, o, bucket, key)
		name = key
	case strings.HasPrefix(uri, "file://"):
		u, perr := url.Parse(uri)
		if perr != nil {
			return nil, errors.New("E302").Wrap(perr).WithDetailf("Cannot parse %q.", uri)
		}
		name = u.Path
		data, err = readFile(name)
	case strings.Contains(uri, "://"):
		return nil, errors.New("E302").WithDetailf("Scheme of %q is not supported.", uri)
	default:
		name = uri
		data, err = readFile(uri)
	}
	if err != nil {
		return nil, errors.New("E300").Wrap(err).WithDetailf("%s: %v", uri, err)
	}

	rows, err := Decode(data, FormatOf(name))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", errors.New("E302").WithDetailf("%q is not an s3:// URI.", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New("E302").
			WithDetailf("%q must name a bucket and a key.", uri).
			WithSuggestion("Use s3://bucket/path/to/rows.json")
	}
	return bucket, key, nil
}

// NewS3Client builds an anonymous S3 client. Public buckets and local
// object stores need no credentials.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func readS3(ctx context.Context, o Options, bucket, key string) ([]byte, error) {
	client := o.Client
	if client == nil {
		client = NewS3Client(o.Region, o.Endpoint)
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return readLimited(out.Body)
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxDocumentSize)
	}
	return data, nil
}

// Format is a row document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file name. Names without a known
// extension are read as YAML, which also accepts plain JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

type rowDoc struct {
	ID    string         `json:"id" yaml:"id"`
	Group bool           `json:"group" yaml:"group"`
	Data  map[string]any `json:"data" yaml:"data"`
}

// Decode parses a row document.
func Decode(data []byte, format Format) ([]cell.RowNode, error) {
	var docs []rowDoc
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		err = dec.Decode(&docs)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&docs)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, errors.New("E302").WithDetailf("Format %q is not supported.", format)
	}
	if err != nil {
		return nil, errors.New("E301").Wrap(err).WithDetailf("%v", err)
	}

	rows := make([]cell.RowNode, len(docs))
	for i, d := range docs {
		rows[i] = cell.RowNode{ID: d.ID, Group: d.Group, Data: d.Data}
	}
	return rows, nil
}
