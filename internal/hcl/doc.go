// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses base configuration files, decodes them into the
// schema structs below and translates those into the format-agnostic
// config.Base model.
//
// A base configuration file looks like:
//
//	entry = "src/index.js"
//	icon  = "src/favicon.ico"
//	inject = ["API_URL", "APP_NAME"]
//
//	output {
//	  path        = "dist/current"
//	  public_path = "/"
//	}
//
//	rule "css-modules" {
//	  extensions = [".module.scss"]
//	  modes      = ["production"]
//	  step "css-modules" {
//	    options = { localIdentName = "[hash:base64]" }
//	  }
//	}
//
//	settings {
//	  performance = { hints = false }
//	}
//
// A directory path loads every .hcl file below it in lexical order; later
// files override single-valued fields and append rules.
package hcl
