// Package config loads paramfix settings.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	      +-----------+-----------+
//	      |                       |
//	+-----+-----+           +----+----+
//	|   YAML    |           |   HCL   |
//	|  Parser   |           |  Parser |
//	+-----------+           +---------+
//
// 🎯 Purpose:
// - Picks a parser by file extension (.yaml, .yml, .hcl)
// - Fills defaults: root app/api, filename route.ts
// - Validates the filename and ignore globs
//
// A config file is optional. Without one, paramfix behaves like a bare
// script run from the project root: it rewrites every app/api/**/route.ts.
//
// 🔍 Example (.paramfix.yaml):
//
//	root: app/api
//	filename: route.ts
//	ignore:
//	  - "**/node_modules/**"
//	dry_run: true
//
// 🔍 Example (.paramfix.hcl):
//
//	root   = "${default_root}"
//	ignore = ["legacy/**"]
//	diff   = true
package config
