// Package config defines run settings for the attenuation calculator and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the absorber data directory and the log level. A
// missing settings file is not an error; defaults apply so the tool runs from
// a bare checkout containing only a Data directory and a script.
package config
