// Package config loads dotpatina's application configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file: --config, else $DOTPATINA_CONFIG, else
//     $XDG_CONFIG_HOME/dotpatina/config.toml when it exists
//  3. environment variables DOTPATINA_<SECTION>__<KEY>, for example
//     DOTPATINA_APPLY__NO_TRASH=true, plus NO_COLOR
//  4. explicit overrides, typically command line flags
package config
