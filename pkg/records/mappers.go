package records

import "github.com/samvad-hq/placeholder-client/internal/domain"

// Package records converts generic JSON objects into typed domain records.
// Mappers are pure: no I/O, no shared state. On failure they return the zero
// record and a *MappingError.

// MapPost reads id, userId, title and body.
func MapPost(obj map[string]any) (domain.Post, error) {
	r := newFieldReader("post", obj)
	p := domain.Post{
		PostID: r.integer("id"),
		UserID: r.integer("userId"),
		Title:  r.str("title"),
		Body:   r.str("body"),
	}
	if r.err != nil {
		return domain.Post{}, r.err
	}
	return p, nil
}

// MapGeo reads lat and lng; the API encodes both as strings.
func MapGeo(obj map[string]any) (domain.Geo, error) {
	r := newFieldReader("geo", obj)
	g := domain.Geo{
		Lat: r.str("lat"),
		Lng: r.str("lng"),
	}
	if r.err != nil {
		return domain.Geo{}, r.err
	}
	return g, nil
}

func MapAddress(obj map[string]any) (domain.Address, error) {
	r := newFieldReader("address", obj)
	a := domain.Address{
		Street:  r.str("street"),
		Suite:   r.str("suite"),
		City:    r.str("city"),
		Zipcode: r.str("zipcode"),
	}
	geoObj := r.object("geo")
	if r.err != nil {
		return domain.Address{}, r.err
	}

	geo, err := MapGeo(geoObj)
	if err != nil {
		return domain.Address{}, nested("address", "geo", err)
	}
	a.Geo = geo
	return a, nil
}

// MapCompany maps catchPhrase onto Company.CatchPhrase.
func MapCompany(obj map[string]any) (domain.Company, error) {
	r := newFieldReader("company", obj)
	c := domain.Company{
		Name:        r.str("name"),
		CatchPhrase: r.str("catchPhrase"),
		BS:          r.str("bs"),
	}
	if r.err != nil {
		return domain.Company{}, r.err
	}
	return c, nil
}

// MapUser resolves address (and its geo) and company before building the user.
func MapUser(obj map[string]any) (domain.User, error) {
	r := newFieldReader("user", obj)
	id := r.integer("id")
	name := r.str("name")
	username := r.str("username")
	email := r.str("email")
	addressObj := r.object("address")
	phone := r.str("phone")
	website := r.str("website")
	companyObj := r.object("company")
	if r.err != nil {
		return domain.User{}, r.err
	}

	address, err := MapAddress(addressObj)
	if err != nil {
		return domain.User{}, nested("user", "address", err)
	}
	company, err := MapCompany(companyObj)
	if err != nil {
		return domain.User{}, nested("user", "company", err)
	}

	return domain.User{
		UserID:   id,
		Name:     name,
		Username: username,
		Email:    email,
		Phone:    phone,
		Website:  website,
		Address:  address,
		Company:  company,
	}, nil
}
