package main

import "github.com/Sid-0307/Kudumbam/internal/infrastructure/config"

const defaultConfigName = config.DefaultConfigFile

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}

// Valid relations output formats.
var relationFormats = []string{"tree", "list", "json"}
