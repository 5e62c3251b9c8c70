package cascade

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/storetest"
)

func TestScope_DeleteSQL(t *testing.T) {
	orders := ByTenant("orders")
	assert.Equal(t, "DELETE FROM orders WHERE tenant_id = ?", orders.DeleteSQL())

	items := Through("order_items", "order_id", orders)
	assert.Equal(t,
		"DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE tenant_id = ?)",
		items.DeleteSQL())

	channels := ByTenant("tenant_channels")
	creds := Through("channel_credentials", "channel_account_id", Through("channel_accounts", "tenant_channel_id", channels))
	assert.Equal(t,
		"DELETE FROM channel_credentials WHERE channel_account_id IN "+
			"(SELECT id FROM channel_accounts WHERE tenant_channel_id IN "+
			"(SELECT id FROM tenant_channels WHERE tenant_id = ?))",
		creds.DeleteSQL())
	// один плейсхолдер на любой глубине
	assert.Equal(t, 1, strings.Count(creds.DeleteSQL(), "?"))
}

func TestDefaultPlan_Valid(t *testing.T) {
	p := DefaultPlan()
	require.NoError(t, p.Validate())
	require.Len(t, p, 8)

	tables := p.Tables()
	assert.Equal(t, "post_results", tables[0])
	assert.Equal(t, TenantsTable, tables[len(tables)-1])
	assert.Contains(t, p.Describe(), "8. root")
}

func TestDefaultPlan_ParentsAfterChildren(t *testing.T) {
	pos := map[string]int{}
	for i, table := range DefaultPlan().Tables() {
		pos[table] = i
	}

	// пары (дочерняя, родительская) из схемы
	edges := [][2]string{
		{"post_results", "post_jobs"},
		{"post_jobs", "social_posts"},
		{"content_variants", "social_posts"},
		{"social_post_targets", "social_posts"},
		{"social_post_targets", "channel_accounts"},
		{"channel_credentials", "channel_accounts"},
		{"channel_accounts", "tenant_channels"},
		{"order_items", "orders"},
		{"order_items", "products"},
		{"payments", "orders"},
		{"mercadopago_payments", "orders"},
		{"orders", "customers"},
		{"inventory_transactions", "products"},
		{"product_inventory", "products"},
		{"service_products", "services"},
		{"service_quotes", "customers"},
		{"service_retouch_config", "services"},
		{"advance_applications", "customer_advances"},
		{"advance_applications", "bookings"},
		{"customer_visits", "bookings"},
		{"customer_visits", "customers"},
		{"bookings", "staff"},
		{"customers", "services"},
	}
	for _, e := range edges {
		assert.Less(t, pos[e[0]], pos[e[1]], "%s must be deleted before %s", e[0], e[1])
	}
}

func TestPlan_ValidateRejects(t *testing.T) {
	root := Phase{Name: "root", Steps: []Scope{{Table: TenantsTable, Column: "id"}}}

	cases := map[string]Plan{
		"empty":          {},
		"no root":        {{Name: "a", Steps: []Scope{ByTenant("orders")}}},
		"empty phase":    {{Name: "a"}, root},
		"duplicate":      {{Name: "a", Steps: []Scope{ByTenant("orders")}}, {Name: "b", Steps: []Scope{ByTenant("orders")}}, root},
		"bad identifier": {{Name: "a", Steps: []Scope{ByTenant("orders; DROP TABLE tenants")}}, root},
		"bad via":        {{Name: "a", Steps: []Scope{Through("order_items", "order_id", ByTenant("Orders"))}}, root},
		"root by tenant": {{Name: "root", Steps: []Scope{ByTenant(TenantsTable)}}},
		"root not alone": {{Name: "root", Steps: []Scope{ByTenant("orders"), {Table: TenantsTable, Column: "id"}}}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, p.Validate())
		})
	}
}

func TestDefaultPlan_CoversEveryModel(t *testing.T) {
	gdb := storetest.NewDB(t)

	names, err := model.TableNames(gdb)
	require.NoError(t, err)

	planned := DefaultPlan().Tables()
	sort.Strings(names)
	sort.Strings(planned)
	assert.Equal(t, names, planned)
}
