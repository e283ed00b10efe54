// Package validation checks configuration structs using go-playground
// validator struct tags. Field names in messages follow the mapstructure
// keys, so a failure reads the way the setting is written in config.yml:
//
//	type Chunking struct {
//	    MaxChunkSize int64 `mapstructure:"max_chunk_size" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg) // "chunking.max_chunk_size: must be greater than 0"
//
// Rules that tags cannot express are collected with a Collector.
package validation
