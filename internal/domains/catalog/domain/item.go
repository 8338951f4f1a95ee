package domain

import (
	"errors"
	"strings"
)

// Kind discriminates the closed set of item variants.
type Kind string

const (
	KindGeneric Kind = "item"
	KindBook    Kind = "book"
)

var (
	ErrEmptyName      = errors.New("item name is required")
	ErrInvalidPrice   = errors.New("item price must not be negative")
	ErrInvalidKind    = errors.New("item kind is invalid")
	ErrNotEnoughStock = errors.New("not enough stock")
)

// Item is a stock-bearing catalog entry. Variants share the price and stock
// contract; variant-specific fields are additive payload, not behavior.
type Item struct {
	ID         int64
	Name       string
	Price      int64
	Stock      int
	Categories []string
	Kind       Kind

	// Book payload, meaningful only when Kind == KindBook.
	Author string
	ISBN   string
}

// NewItem builds a generic catalog item.
func NewItem(name string, price int64, stock int) (*Item, error) {
	item := &Item{Price: price, Stock: stock, Kind: KindGeneric}
	if err := item.validate(name); err != nil {
		return nil, err
	}
	return item, nil
}

// NewBook builds a book variant carrying author and ISBN payload.
func NewBook(name string, price int64, stock int, author, isbn string) (*Item, error) {
	item := &Item{Price: price, Stock: stock, Kind: KindBook, Author: strings.TrimSpace(author), ISBN: strings.TrimSpace(isbn)}
	if err := item.validate(name); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) validate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	if !isValidKind(i.Kind) {
		return ErrInvalidKind
	}
	i.Name = name
	return nil
}

func isValidKind(kind Kind) bool {
	switch kind {
	case KindGeneric, KindBook:
		return true
	default:
		return false
	}
}

// RemoveStock decrements the stock quantity, failing when the result would
// drop below zero. Stock is left untouched on failure.
func (i *Item) RemoveStock(count int) error {
	rest := i.Stock - count
	if rest < 0 {
		return ErrNotEnoughStock
	}
	i.Stock = rest
	return nil
}

// AddStock increments the stock quantity. No upper bound is enforced.
func (i *Item) AddStock(count int) {
	i.Stock += count
}

// ChangePrice replaces the unit price. Lines already placed keep their
// snapshot and are unaffected.
func (i *Item) ChangePrice(price int64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	i.Price = price
	return nil
}
