// Package configs manages rsakit's user configuration and directories.
//
// # Settings
//
// UserRsakitSettings holds the directories rsakit uses, resolved at startup:
//   - UserKeysPath: $XDG_DATA_HOME/rsakit/keys (default key store)
//   - UserConfigsPath: the OS config dir + /rsakit
//
// # Configuration File
//
// config.toml is written with BurntSushi/toml and read with viper:
//
//	[keygen]
//	bits = 2048
//	max_prime_attempts = 0   # 0 = 20 candidates per prime bit
//	max_retries = 8
//
//	[store]
//	path = ""                # empty = UserKeysPath
//
// Every key can be overridden from the environment with the RSAKIT_ prefix
// and dots replaced by underscores, e.g. RSAKIT_KEYGEN_BITS=4096.
// A missing file is not an error; defaults apply. Out-of-range values are
// rejected with ErrInvalidConfig.
package configs
