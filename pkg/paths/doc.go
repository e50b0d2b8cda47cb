// Package paths provides path handling for dotpatina.
//
// Paths referenced by a patina (templates, targets, overlay files) are
// resolved against the directory holding the patina document:
//
//   - absolute paths are returned unchanged
//   - a leading ~ is expanded to the user's home directory
//   - $VAR and ${VAR} references are expanded from the environment
//   - . and .. segments are collapsed
//   - symlinks are resolved when the path exists; paths that apply will
//     create later keep their joined form
//
// # XDG Base Directory Structure
//
//   - Config: $XDG_CONFIG_HOME/dotpatina/config.toml
//   - Trash:  $XDG_DATA_HOME/Trash (FreeDesktop trash can)
//
// DOTPATINA_CONFIG overrides the config file location.
package paths
