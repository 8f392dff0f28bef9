// Package config reads conduit's runtime settings from the environment.
package config
