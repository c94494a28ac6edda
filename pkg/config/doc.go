// Package config owns the vidra settings model: the typed schema with
// defaults and per-field validation, partial-override merging, preset
// bundles, and the JSON-backed store with its migration hook.
package config
