/*
Package config manages configuration parsing and validation for nativefs.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------------+---------------+
	   |               |               |
	+--+--+        +---+---+       +---+---+
	| HCL |        | YAML  |       | JSON  |
	+-----+        +-------+       +-------+
	                   |
	            +------+------+
	            | Environment |
	            | (NATIVEFS_*)|
	            +-------------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values and fills defaults
- Discovers well-known config files (.nativefs.hcl, .nativefs.yaml, ...)
- Overlays NATIVEFS_* environment variables

🔄 Flow:
1. Discover (or accept) a configuration file path
2. Dispatch to a registered format parser
3. Validate values and apply defaults
4. Overlay environment variables via ApplyEnv

⚡ Key Responsibilities:
- Configuration parsing
- Schema validation
- Default value management
- Environment overrides
- Format abstraction

🤝 Interfaces:
- Parser: Format-specific parsing, registered at init time
- Config: Type-safe settings for the transfer engine and CLI

🔍 Example:

	path, ok := config.Discover(ctx, ".")
	cfg := config.Default()
	if ok {
		var err error
		cfg, err = config.Load(ctx, path)
		if err != nil {
			return err
		}
	}
	if err := config.ApplyEnv(ctx, cfg); err != nil {
		return err
	}
*/
package config
