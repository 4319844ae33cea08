package assets

import _ "embed"

// ExampleConfig is the annotated configuration written by `config init`.
//
//go:embed gateway_probe.example.yaml
var ExampleConfig []byte
