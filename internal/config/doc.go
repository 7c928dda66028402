// Package config loads viewbuf settings.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional config file (viewbuf.yaml in the working directory, or any file
// viper can read passed with --config), and VIEWBUF_* environment variables.
// Nested keys map to env names with dots replaced by underscores, so
// render.default_lang is VIEWBUF_RENDER_DEFAULT_LANG.
//
// # Configuration File Structure
//
//	server:
//	  addr: ":8080"
//	  shutdown_timeout: 10s
//	render:
//	  default_lang: en
//	  escaper: html
//	stream:
//	  auto_flush: false
//	  websocket_write_timeout: 5s
//	metrics:
//	  enabled: true
//	  namespace: viewbuf
//	s3:
//	  bucket: my-pages
//	  region: us-east-1
//	log:
//	  level: info
//	  format: text
//	build:
//	  out: dist
//	  concurrency: 4
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    errors.Fprint(os.Stderr, err)
//	    os.Exit(1)
//	}
package config
