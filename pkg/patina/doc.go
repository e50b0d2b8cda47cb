// Package patina loads patina documents.
//
// A patina is a declarative configuration unit: a name, an optional
// description, a variable tree and an ordered list of template to target
// file mappings. Documents are TOML by default; .yaml, .yml and .json files
// are read with the YAML decoder.
//
//	name = "git"
//	description = "Git configuration"
//
//	[vars.name]
//	first = "Patina"
//
//	[[files]]
//	template = "templates/gitconfig.hbs"
//	target = "~/.gitconfig"
//	tags = ["git"]
//
// Every relative path a patina references is resolved against the
// directory holding the document.
package patina
