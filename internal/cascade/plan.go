// Package cascade удаляет тенанта со всеми зависимыми строками.
//
// Внешние ключи в схеме RESTRICT, каскадов на уровне БД нет, поэтому порядок
// удаления задаётся явно: план состоит из фаз, фаза из шагов, шаг
// описывает строки одной таблицы, принадлежащие тенанту.
package cascade

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TenantsTable = "tenants"
	tenantColumn = "tenant_id"
)

var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Scope — строки Table, у которых Column равен id тенанта (Via == nil)
// либо входит в id строк родительского Scope. Родитель разворачивается
// во вложенный подзапрос внутри той же транзакции, а не в заранее собранный список.
type Scope struct {
	Table  string
	Column string
	Via    *Scope
}

// ByTenant выбирает строки таблицы с tenant_id = ?.
func ByTenant(table string) Scope {
	return Scope{Table: table, Column: tenantColumn}
}

// Through выбирает строки таблицы, ссылающиеся колонкой column на строки parent.
func Through(table, column string, parent Scope) Scope {
	p := parent
	return Scope{Table: table, Column: column, Via: &p}
}

// Condition возвращает WHERE-условие с единственным плейсхолдером для id тенанта.
func (s Scope) Condition() string {
	if s.Via == nil {
		return s.Column + " = ?"
	}
	return fmt.Sprintf("%s IN (SELECT id FROM %s WHERE %s)", s.Column, s.Via.Table, s.Via.Condition())
}

func (s Scope) DeleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", s.Table, s.Condition())
}

func (s Scope) String() string {
	if s.Via == nil {
		return s.Table + "." + s.Column
	}
	return s.Table + "." + s.Column + " -> " + s.Via.String()
}

func (s Scope) validate() error {
	for cur := &s; cur != nil; cur = cur.Via {
		if !identRe.MatchString(cur.Table) {
			return fmt.Errorf("invalid table identifier %q", cur.Table)
		}
		if !identRe.MatchString(cur.Column) {
			return fmt.Errorf("invalid column identifier %q in %s", cur.Column, cur.Table)
		}
	}
	return nil
}

// Phase — шаги, которые можно выполнять в любом порядке между собой,
// но только после завершения всех предыдущих фаз.
type Phase struct {
	Name  string
	Steps []Scope
}

type Plan []Phase

// DefaultPlan — порядок удаления для текущей схемы.
func DefaultPlan() Plan {
	socialPosts := ByTenant("social_posts")
	postJobs := ByTenant("post_jobs")
	channels := ByTenant("tenant_channels")
	accounts := Through("channel_accounts", "tenant_channel_id", channels)
	orders := ByTenant("orders")

	return Plan{
		{
			Name: "social",
			Steps: []Scope{
				// post_results ссылаются на post_jobs
				Through("post_results", "post_job_id", postJobs),
				postJobs,
				Through("content_variants", "social_post_id", socialPosts),
				Through("social_post_targets", "social_post_id", socialPosts),
				socialPosts,
				ByTenant("posting_rules"),
			},
		},
		{
			Name: "channels",
			Steps: []Scope{
				Through("channel_credentials", "channel_account_id", accounts),
				accounts,
				channels,
			},
		},
		{
			Name: "commerce",
			Steps: []Scope{
				Through("order_items", "order_id", orders),
				ByTenant("payments"),
				ByTenant("mercadopago_payments"),
				orders,
				ByTenant("mercadopago_tokens"),
				ByTenant("pos_terminals"),
			},
		},
		{
			Name: "inventory",
			Steps: []Scope{
				ByTenant("inventory_transactions"),
				ByTenant("inventory_alerts"),
				ByTenant("product_inventory"),
				ByTenant("product_alert_config"),
				ByTenant("service_products"),
				ByTenant("service_quotes"),
				ByTenant("service_retouch_config"),
			},
		},
		{
			Name: "customers",
			Steps: []Scope{
				ByTenant("advance_applications"),
				ByTenant("customer_advances"),
				ByTenant("customer_visits"),
				ByTenant("bookings"),
			},
		},
		{
			Name: "core",
			Steps: []Scope{
				ByTenant("customers"),
				ByTenant("products"),
				ByTenant("services"),
				ByTenant("staff"),
				ByTenant("user_roles"),
			},
		},
		{
			Name: "config",
			Steps: []Scope{
				ByTenant("tenant_configs"),
				ByTenant("api_keys"),
				ByTenant("audit_logs"),
				ByTenant("tenant_quotas"),
				ByTenant("tenant_holidays"),
				ByTenant("media_assets"),
			},
		},
		{
			Name:  "root",
			Steps: []Scope{{Table: TenantsTable, Column: "id"}},
		},
	}
}

// Validate проверяет форму плана: корректные идентификаторы, каждая таблица
// удаляется ровно один раз, последняя фаза удаляет только саму строку tenants.
func (p Plan) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("cascade plan is empty")
	}

	seen := make(map[string]string)
	for i, phase := range p {
		if len(phase.Steps) == 0 {
			return fmt.Errorf("phase %d (%s) has no steps", i+1, phase.Name)
		}
		for _, step := range phase.Steps {
			if err := step.validate(); err != nil {
				return fmt.Errorf("phase %s: %w", phase.Name, err)
			}
			if prev, dup := seen[step.Table]; dup {
				return fmt.Errorf("table %s deleted twice (phases %s and %s)", step.Table, prev, phase.Name)
			}
			seen[step.Table] = phase.Name
		}
	}

	last := p[len(p)-1]
	if len(last.Steps) != 1 {
		return fmt.Errorf("last phase must delete only the tenant row")
	}
	root := last.Steps[0]
	if root.Table != TenantsTable || root.Column != "id" || root.Via != nil {
		return fmt.Errorf("last phase must delete %s by id, got %s", TenantsTable, root)
	}
	return nil
}

// Tables возвращает таблицы в порядке удаления.
func (p Plan) Tables() []string {
	var out []string
	for _, phase := range p {
		for _, step := range phase.Steps {
			out = append(out, step.Table)
		}
	}
	return out
}

// Describe печатает план для CLI и логов.
func (p Plan) Describe() string {
	var b strings.Builder
	for i, phase := range p {
		fmt.Fprintf(&b, "%d. %s\n", i+1, phase.Name)
		for _, step := range phase.Steps {
			fmt.Fprintf(&b, "   %s\n", step.DeleteSQL())
		}
	}
	return b.String()
}
