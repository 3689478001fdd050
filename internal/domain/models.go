package domain

import "fmt"

// Domain contains the typed records served by the placeholder API.

// Post is a single blog post.
type Post struct {
	PostID int    `json:"post_id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (p Post) String() string {
	return fmt.Sprintf("Post(user_id=%d,\n id=%d,\n title=%s,\n body=%s)", p.UserID, p.PostID, p.Title, p.Body)
}

// Geo holds coordinates exactly as the API encodes them (decimal strings).
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

func (g Geo) String() string {
	return fmt.Sprintf("(lat=%s,\n\t lng=%s)", g.Lat, g.Lng)
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

func (a Address) String() string {
	return fmt.Sprintf("(street=%s,\n\t suite=%s,\n\t city=%s,\n\t zipcode=%s,\n\t geo=%s)",
		a.Street, a.Suite, a.City, a.Zipcode, a.Geo)
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catch_phrase"`
	BS          string `json:"bs"`
}

func (c Company) String() string {
	return fmt.Sprintf("(name=%s,\n\t catchPhrase=%s,\n\t bs=%s)", c.Name, c.CatchPhrase, c.BS)
}

// User is an API user with its owned address and company.
type User struct {
	UserID   int     `json:"user_id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

func (u User) String() string {
	return fmt.Sprintf("User(id=%d,\n name=%s,\n username=%s,\n email=%s,\n address=%s,\n phone=%s,\n website=%s,\n company=%s)",
		u.UserID, u.Name, u.Username, u.Email, u.Address, u.Phone, u.Website, u.Company)
}
