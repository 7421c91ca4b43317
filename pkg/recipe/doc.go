// Package recipe indexes recipe records by the ingredients they involve.
//
// Categories (recipe types), their records and their catalysts are registered
// on a Builder. Build resolves every ingredient a record reports through an
// ingredient.Resolver and produces an immutable Manager answering three
// questions for a focus (an ingredient value and the role it plays):
//
//   - RecipeTypes: which recipe types involve the ingredient in that role
//   - Recipes: which records of a type involve it
//   - AllRecipes: every record of a type
//
// When the focused ingredient is a declared catalyst of a type, Recipes
// returns the directly matched records followed by the remaining records of
// the type. Records are compared by identity: pointer records by address,
// other records by registration position.
//
// Build failures fall into two classes. Configuration errors, such as two
// different categories sharing a TypeID or a recipe naming an unregistered
// type, fail the build. Ingestion errors affect a single record (invalid,
// extraction failure, unresolvable ingredient); the record is skipped and
// reported to the Diagnostics sink once per distinct cause.
//
// Usage:
//
//	smelting := recipe.NewType[*Smelt]("smelting")
//	b := recipe.NewBuilder(resolver)
//	b.AddCategories(recipe.NewCategory(smelting, extractSmelt))
//	recipe.AddRecipe(b, smelting, &Smelt{In: ironOre, Out: ironIngot})
//	b.AddCatalyst(smelting.ID(), furnace)
//	m, err := b.Build(ctx)
//
//	types, err := m.RecipeTypes(recipe.NewFocus(ingredient.RoleInput, ironOre))
//
// A Manager never changes after Build. Use a Holder to publish a rebuilt
// index to concurrent readers.
package recipe
