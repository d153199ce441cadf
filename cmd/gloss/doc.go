// Package main hosts the gloss CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the localization engines:
// text extraction, translation application, corpus migration and
// merging, font transplants, character-set inventory, the
// translation-memory database, and the chained pipeline run. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
