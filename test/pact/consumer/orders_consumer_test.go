//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/shopfront/order-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderLinePayload struct {
	ItemName string `json:"itemName"`
	Price    int64  `json:"price"`
	Count    int    `json:"count"`
}

type addressPayload struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

type orderPayload struct {
	OrderID    int64              `json:"orderId"`
	MemberName string             `json:"memberName"`
	OrderedAt  string             `json:"orderedAt"`
	Status     string             `json:"status"`
	Address    addressPayload     `json:"address"`
	Lines      []orderLinePayload `json:"lines"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestOrderPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	lineMatcher := matchers.Map{
		"itemName": matchers.Like(pacttest.ExampleItemName),
		"price":    matchers.Like(10000),
		"count":    matchers.Like(2),
	}
	orderMatcher := matchers.Map{
		"orderId":    matchers.Like(pacttest.ExistingOrderID),
		"memberName": matchers.Like(pacttest.ExampleMemberName),
		"orderedAt":  matchers.Regex(pacttest.ExampleOrderedAt, `\d{4}-\d{2}-\d{2}T.*`),
		"status":     matchers.Term("ORDER", "ORDER|CANCEL"),
		"address": matchers.Map{
			"city":    matchers.Like("Seoul"),
			"street":  matchers.Like("pact street"),
			"zipcode": matchers.Like("04524"),
		},
		"lines": matchers.EachLike(lineMatcher, 1),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to list orders").
		WithRequest("GET", "/api/orders").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(orderMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%d", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a paginated request against the flat join listing").
		WithRequest("GET", "/api/v4/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("limit", matchers.S("10"))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/bad-request"),
				"title":  matchers.S("Bad Request"),
				"status": matchers.Like(http.StatusBadRequest),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		listed, err := client.ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		if len(listed) == 0 {
			return fmt.Errorf("expected at least one order in the listing")
		}

		fetched, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched == nil || fetched.OrderID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order id %d, got %+v", pacttest.ExistingOrderID, fetched)
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %d", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		if _, err := client.ListFlatJoinPaginated(ctx); err == nil {
			return fmt.Errorf("expected 400 for paginated flat join listing")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusBadRequest {
			return fmt.Errorf("expected 400, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *orderClient) ListOrders(ctx context.Context) ([]orderPayload, error) {
	var payload []orderPayload
	if err := c.getJSON(ctx, c.baseURL+"/api/orders", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *orderClient) GetOrder(ctx context.Context, id int64) (*orderPayload, error) {
	var payload orderPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/orders/%d", c.baseURL, id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *orderClient) ListFlatJoinPaginated(ctx context.Context) ([]orderPayload, error) {
	var payload []orderPayload
	if err := c.getJSON(ctx, c.baseURL+"/api/v4/orders?limit=10", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *orderClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
