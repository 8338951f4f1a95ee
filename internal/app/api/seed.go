package api

import (
	"context"
	"fmt"

	catalogapp "github.com/shopfront/order-api/internal/domains/catalog/application"
	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	memberapp "github.com/shopfront/order-api/internal/domains/members/application"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
)

// seedSampleData registers two members, stocks a few items, and places an
// order for each member through the workflow orchestrator. Skipped when
// members already exist, so reboots against a populated database are no-ops.
func seedSampleData(
	ctx context.Context,
	members *memberapp.Service,
	items *catalogapp.Service,
	orders orderports.WorkflowOrchestrator,
) error {
	existing, err := members.ListMembers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	userA, err := members.Register(ctx, "userA", memberdomain.NewAddress("Seoul", "1", "1111"))
	if err != nil {
		return err
	}
	userB, err := members.Register(ctx, "userB", memberdomain.NewAddress("Jinju", "2", "2222"))
	if err != nil {
		return err
	}

	bookA, err := newBook("JPA1 BOOK", 10000, 100)
	if err != nil {
		return err
	}
	if bookA, err = items.AddItem(ctx, bookA); err != nil {
		return err
	}
	bookB, err := newBook("SPRING1 BOOK", 20000, 200)
	if err != nil {
		return err
	}
	if bookB, err = items.AddItem(ctx, bookB); err != nil {
		return err
	}

	if _, err := orders.PlaceOrder(ctx, types.PlaceOrderInput{MemberID: userA.ID, ItemID: bookA.ID, Count: 1}); err != nil {
		return fmt.Errorf("failed to place sample order for %s: %w", userA.Name, err)
	}
	if _, err := orders.PlaceOrder(ctx, types.PlaceOrderInput{MemberID: userB.ID, ItemID: bookB.ID, Count: 2}); err != nil {
		return fmt.Errorf("failed to place sample order for %s: %w", userB.Name, err)
	}
	return nil
}

func newBook(name string, price int64, stock int) (*catalogdomain.Item, error) {
	return catalogdomain.NewBook(name, price, stock, "Kim", "11111")
}
