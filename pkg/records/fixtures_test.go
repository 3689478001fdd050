package records

// Fixtures mirror the JSONPlaceholder payload shapes.

func mockPost(userID, id int64, title, body string) map[string]any {
	return map[string]any{"userId": userID, "id": id, "title": title, "body": body}
}

func mockUser(id int64, n string, lat, lng string) map[string]any {
	return map[string]any{
		"id":       id,
		"name":     "User " + n,
		"username": "user" + n,
		"email":    "user" + n + "@example.com",
		"address": map[string]any{
			"street":  n + "23 Main St",
			"suite":   "Apt. " + n,
			"city":    "Copenhagen",
			"zipcode": "55555-1234",
			"geo": map[string]any{
				"lat": lat,
				"lng": lng,
			},
		},
		"phone":   "1-333-333-4444 x12345",
		"website": "example" + n + ".org",
		"company": map[string]any{
			"name":        "Company User " + n,
			"catchPhrase": "Multi-layered client-server neural-net",
			"bs":          "harness real-time e-markets",
		},
	}
}
