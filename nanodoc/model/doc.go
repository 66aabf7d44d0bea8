// Package model binds a schema to a named collection and exposes the CRUD
// contract.
//
// Every operation loads the whole collection, works on the in-memory
// sequence and, when it mutates, writes the whole sequence back. Nothing
// coordinates concurrent operations on the same collection: two overlapping
// cycles race and the last save wins.
//
//	users, _ := model.New(store, "users", userSchema)
//	h, _ := users.Create(types.Document{"username": "JohnDoe", "age": 25})
//	h.Doc["age"] = 26
//	_ = h.Save()
//
// Documents returned by Create, FindOne and FindByID come wrapped in a
// Handle remembering where they came from; FindMany returns plain documents.
package model
