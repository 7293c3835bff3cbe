// Package config handles configuration management for sdkpack.
// It supports loading configuration from multiple sources including
// the embedded defaults, TOML files, and environment variables.
//
// Sources, lowest priority first:
//
//  1. embedded/defaults.toml
//  2. $XDG_CONFIG_HOME/sdkpack/config.toml
//  3. .sdkpack.toml in the invocation directory
//  4. the file passed with --config
//  5. SDKPACK_<SECTION>_<KEY> environment variables
package config
