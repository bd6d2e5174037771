// Package config loads the controller configuration.
//
// Configuration is read from config.yaml in a single directory. The default
// directory is ~/.config/dummysite-controller; the run command accepts
// --config-path to point somewhere else. Defaults are applied first, then
// the file, then Validate.
//
// Example config.yaml:
//
//	controller:
//	  namespace: default
//	  scratchDir: /usr/src/app/files
//	  jobTemplatePath: /etc/dummysite/job.yaml.tmpl
//	  backoffLimit: 0
//	watch:
//	  reconnect: true
//	  initialBackoff: 1s
//	  maxBackoff: 1m
package config
