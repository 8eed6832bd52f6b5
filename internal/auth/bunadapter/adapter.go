// Package bunadapter persists Casbin policies in the application database,
// sharing the existing *bun.DB connection pool instead of opening a second
// connection the way the stock adapters do.
//
// Derived from github.com/msales/casbin-bun-adapter, trimmed to the policy
// operations this service uses and stripped of the hard-coded Postgres schema
// qualifier so it works with schema-less table names (SQLite, Postgres public
// schema).
package bunadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	"github.com/uptrace/bun"
)

// CasbinRule is one stored policy line (p or g).
type CasbinRule struct {
	bun.BaseModel `bun:"table:casbin_rules,alias:cr"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Ptype string `bun:"ptype,notnull"`
	V0    string `bun:"v0"`
	V1    string `bun:"v1"`
	V2    string `bun:"v2"`
	V3    string `bun:"v3"`
	V4    string `bun:"v4"`
	V5    string `bun:"v5"`
}

func newCasbinRule(ptype string, rule []string) *CasbinRule {
	r := &CasbinRule{Ptype: ptype}
	slots := []*string{&r.V0, &r.V1, &r.V2, &r.V3, &r.V4, &r.V5}
	for i, v := range rule {
		if i >= len(slots) {
			break
		}
		*slots[i] = v
	}
	return r
}

func (r *CasbinRule) values() []string {
	return []string{r.V0, r.V1, r.V2, r.V3, r.V4, r.V5}
}

// String renders the rule in Casbin's CSV line format for persist.LoadPolicyLine.
func (r *CasbinRule) String() string {
	parts := []string{r.Ptype}
	for _, v := range r.values() {
		if v == "" {
			break
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

// Adapter implements persist.Adapter and persist.BatchAdapter on top of bun.
type Adapter struct {
	db *bun.DB
}

var (
	_ persist.Adapter      = (*Adapter)(nil)
	_ persist.BatchAdapter = (*Adapter)(nil)
)

// NewAdapter creates an Adapter using an existing bun database connection.
// The casbin_rules table must already exist (created by migrations).
func NewAdapter(db *bun.DB) (*Adapter, error) {
	if db == nil {
		return nil, fmt.Errorf("bun adapter requires a database connection")
	}
	return &Adapter{db: db}, nil
}

// LoadPolicy loads all policy rules from the database into the model.
func (a *Adapter) LoadPolicy(m model.Model) error {
	var rules []*CasbinRule
	if err := a.db.NewSelect().Model(&rules).Order("id ASC").Scan(context.Background()); err != nil {
		return fmt.Errorf("failed to load policy from adapter db: %w", err)
	}

	for _, r := range rules {
		if err := persist.LoadPolicyLine(r.String(), m); err != nil {
			return fmt.Errorf("failed to load policy line %q: %w", r.String(), err)
		}
	}
	return nil
}

// SavePolicy replaces all stored rules with the model's current policy.
func (a *Adapter) SavePolicy(m model.Model) error {
	var rules []*CasbinRule
	for _, section := range []string{"p", "g"} {
		for ptype, ast := range m[section] {
			for _, rule := range ast.Policy {
				rules = append(rules, newCasbinRule(ptype, rule))
			}
		}
	}

	err := a.db.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*CasbinRule)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rules).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save policy to adapter db: %w", err)
	}
	return nil
}

// AddPolicy adds a single policy rule to the database.
func (a *Adapter) AddPolicy(_ string, ptype string, rule []string) error {
	r := newCasbinRule(ptype, rule)
	if _, err := a.db.NewInsert().Model(r).Exec(context.Background()); err != nil {
		return fmt.Errorf("failed to add adapter policy rule: %w", err)
	}
	return nil
}

// AddPolicies adds policy rules to the database.
func (a *Adapter) AddPolicies(_ string, ptype string, rules [][]string) error {
	if len(rules) == 0 {
		return nil
	}
	casbinRules := make([]*CasbinRule, 0, len(rules))
	for _, rule := range rules {
		casbinRules = append(casbinRules, newCasbinRule(ptype, rule))
	}
	if _, err := a.db.NewInsert().Model(&casbinRules).Exec(context.Background()); err != nil {
		return fmt.Errorf("failed to add policy rules: %w", err)
	}
	return nil
}

// RemovePolicy removes a single policy rule from the database.
func (a *Adapter) RemovePolicy(_ string, ptype string, rule []string) error {
	r := newCasbinRule(ptype, rule)
	q := a.db.NewDelete().Model((*CasbinRule)(nil)).Where("ptype = ?", r.Ptype)
	for i, v := range r.values() {
		q = q.Where(fmt.Sprintf("v%d = ?", i), v)
	}
	if _, err := q.Exec(context.Background()); err != nil {
		return fmt.Errorf("failed to remove adapter policy rule: %w", err)
	}
	return nil
}

// RemovePolicies removes policy rules from the database.
func (a *Adapter) RemovePolicies(sec string, ptype string, rules [][]string) error {
	for _, rule := range rules {
		if err := a.RemovePolicy(sec, ptype, rule); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFilteredPolicy removes policy rules matching the filter from the database.
func (a *Adapter) RemoveFilteredPolicy(_ string, ptype string, fieldIndex int, fieldValues ...string) error {
	q := a.db.NewDelete().Model((*CasbinRule)(nil)).Where("ptype = ?", ptype)
	for i, v := range fieldValues {
		if v == "" {
			continue
		}
		q = q.Where(fmt.Sprintf("v%d = ?", fieldIndex+i), v)
	}
	if _, err := q.Exec(context.Background()); err != nil {
		return fmt.Errorf("failed to remove filtered adapter policy: %w", err)
	}
	return nil
}
