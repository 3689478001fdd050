package domain

import (
	"strings"
	"testing"
)

func TestPostStringLayout(t *testing.T) {
	p := Post{PostID: 1, UserID: 7, Title: "Post 1", Body: "Body 1"}
	want := "Post(user_id=7,\n id=1,\n title=Post 1,\n body=Body 1)"
	if got := p.String(); got != want {
		t.Fatalf("Post.String() = %q, want %q", got, want)
	}
}

func TestUserStringIncludesNestedRecords(t *testing.T) {
	u := User{
		UserID: 1,
		Name:   "User 1",
		Address: Address{
			Street: "123 Main St",
			Geo:    Geo{Lat: "-37.3159", Lng: "81.1496"},
		},
		Company: Company{Name: "Company User 1", CatchPhrase: "Multi-layered", BS: "harness"},
	}

	got := u.String()
	for _, frag := range []string{
		"User(id=1,",
		"address=(street=123 Main St,",
		"geo=(lat=-37.3159,\n\t lng=81.1496)",
		"company=(name=Company User 1,\n\t catchPhrase=Multi-layered,\n\t bs=harness)",
	} {
		if !strings.Contains(got, frag) {
			t.Fatalf("User.String() missing %q in:\n%s", frag, got)
		}
	}
}
