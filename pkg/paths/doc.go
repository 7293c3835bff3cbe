// Package paths provides centralized path handling for sdkpack.
//
// It resolves the directories a build touches relative to the invocation
// directory (the source tree and the output archive) and the XDG locations
// used for the user config file and the log file.
//
// # Environment Variables
//
//   - SDKPACK_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/sdkpack)
//   - SDKPACK_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/sdkpack)
//
// # Usage
//
//	p, err := paths.New("") // invocation directory = cwd
//	if err != nil {
//	    return err
//	}
//
//	src := p.Resolve("src")             // /home/user/sdk/src
//	out := p.Resolve("nacl-sdk.tgz")    // /home/user/sdk/nacl-sdk.tgz
//	cfg := p.UserConfigPath()           // ~/.config/sdkpack/config.toml
package paths
