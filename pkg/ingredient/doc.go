// Package ingredient defines ingredient identity for the recipe index.
//
// Ingredient values are opaque to the index. Each value reports its Kind, and
// the host registers one Helper per Kind that turns a value into a stable
// unique id under a Context:
//
//   - ContextRecipe groups values that are the same for lookup purposes
//     (an item ignoring durability, for example)
//   - ContextIngredient distinguishes every variant exactly
//
// The resulting UID is comparable and is used directly as a map key by the
// recipe index. Helpers must be deterministic; two logically different values
// that produce the same UID are indistinguishable to the index.
//
// Usage:
//
//	m := ingredient.NewManager()
//	m.MustRegister(ingredient.NewHelper(KindItem, func(v Item, ctx ingredient.Context) (string, error) {
//	    return v.Name, nil
//	}))
//	uid, err := m.Identity(Item{Name: "iron_ore"}, ingredient.ContextRecipe)
package ingredient
