// Package unit is the process-wide catalog of loadable source units.
//
// Go cannot import a source file by path at runtime, so plugin packages
// register the members each of their files exports from an init function,
// keyed by the dotted module identifier the registry derives from the file's
// path (for example examples/subclass/dog.go registers "examples.subclass.dog").
// The discovery registry walks the filesystem as usual and resolves each
// translated identifier against a Catalog. PluginLoader covers the dynamic
// case for units built with -buildmode=plugin.
package unit
