// Package recipe loads and validates recipe definitions from a
// cookbook.
//
// A cookbook is a tree of recipe directories. Each recipe lives in a
// directory named after it and is defined by a recipe.yaml document:
//
//	kind: Recipe
//	apiVersion: cookbook.nvidia.com/v1alpha1
//	metadata:
//	  name: blog
//	  description: Weblog publishing stack
//	spec:
//	  recipes:
//	    - base
//	  extensions:
//	    - comments
//	    - feeds
//	  configs:
//	    - name: blog-settings
//	      file: settings.yaml
//	  actions:
//	    - name: rebuild-index
//
// Config payloads referenced by file live next to the definition and
// are resolved relative to the recipe directory.
//
// # Loading
//
// The Loader reads definitions through a Cookbook, which abstracts the
// backing store (a directory on disk, an fs.FS, a test fixture):
//
//	cb, err := recipe.OpenDir("/var/lib/cookbook/recipes")
//	if err != nil {
//		return err
//	}
//	loader := recipe.NewLoader(cb)
//	def, err := loader.Load(ctx, "blog")
//
// Loads validate the document's kind, apiVersion, and metadata, and
// reject names or config file references that escape the cookbook
// root.
//
// # Caching
//
// Parsing is cheap but not free; hosts that load the same recipes
// repeatedly can opt in to a definition cache:
//
//	cache, err := recipe.OpenCache(filepath.Join(home, ".cookbook", "cache"))
//	if err != nil {
//		return err
//	}
//	loader := recipe.NewLoader(cb, recipe.WithCache(cache))
//
// Entries are keyed by the SHA-256 fingerprint of the source document,
// so editing a recipe.yaml invalidates its entry on the next load.
// Cache failures degrade to source parses and never fail a load.
package recipe
