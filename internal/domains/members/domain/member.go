package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName = errors.New("member name is required")
)

// Address is the embedded postal address shared by members and deliveries.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// NewAddress builds an address value.
func NewAddress(city, street, zipcode string) Address {
	return Address{
		City:    strings.TrimSpace(city),
		Street:  strings.TrimSpace(street),
		Zipcode: strings.TrimSpace(zipcode),
	}
}

// Member represents a registered shop member.
type Member struct {
	ID      int64
	Name    string
	Address Address
}

// NewMember builds a member ensuring required invariants.
func NewMember(name string, address Address) (*Member, error) {
	member := &Member{Address: address}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	return member, nil
}

// Rename trims and validates the member name.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// Relocate replaces the member address.
func (m *Member) Relocate(address Address) {
	m.Address = address
}
