// Package config manages user-level settings stored at ~/.productor/config.yaml.
// Values can be overridden with PRODUCTOR_* environment variables, where a
// dot in the key becomes an underscore (log.level → PRODUCTOR_LOG_LEVEL).
package config
