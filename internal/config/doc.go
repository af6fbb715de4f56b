/*
Package config resolves the espigot runtime configuration.

Values are layered, lowest precedence first:

 1. Default()
 2. a YAML file (espigot.yaml, or the path given with --config)
 3. ESPIGOT_* environment variables
 4. command-line flags the user set explicitly (applied by the caller)

Example espigot.yaml:

	engine: series
	digits: 5000
	width: 72
	workers: 4
	log_level: debug
	serve:
	  addr: ":9090"
	  max_digits: 20000
*/
package config
