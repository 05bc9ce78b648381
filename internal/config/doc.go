// Package config provides configuration parsing for gridcell projects.
//
// The configuration is stored in gridcell.json (comments and trailing
// commas allowed) or gridcell.yaml at the project root. This package
// handles loading, saving, defaults and validation.
//
// # Configuration File Structure
//
//	{
//	  "title": "Fruit stand",
//	  "data": "rows.yaml",            // or s3://bucket/rows.json
//	  "columns": [
//	    {"field": "name", "header": "Name", "renderer": "groupStyle"},
//	    {"field": "stars", "renderer": "repeatIcon", "params": {"rendererImage": "sun.png"}},
//	    {"field": "color", "renderer": "swatch"},
//	    {"field": "buy", "renderer": "button", "params": {"label": "Buy"}},
//	  ],
//	  "server": {"host": "localhost", "port": 7070, "metricsPath": "/metrics"},
//	  "render": {"pretty": false, "assetBase": "/static/icons/"},
//	  "s3": {"region": "us-east-1", "endpoint": "http://localhost:9000"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
