package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"talenthub/internal/identity"
)

// Role model statis: subject adalah role dari Principal, bukan user id.
// Setiap role mewarisi employee; admin mewarisi manager dan hr.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=enforcer.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Can(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := seedPolicies(e); err != nil {
		return nil, err
	}
	return &service{enforcer: e}, nil
}

func seedPolicies(e *casbin.Enforcer) error {
	groupings := [][]string{
		{identity.RoleManager, identity.RoleEmployee},
		{identity.RoleHR, identity.RoleEmployee},
		{identity.RoleAdmin, identity.RoleManager},
		{identity.RoleAdmin, identity.RoleHR},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}

	policies := [][]string{
		// Semua role terautentikasi
		{identity.RoleEmployee, "goal", "read"},
		{identity.RoleEmployee, "goal", "create"},
		{identity.RoleEmployee, "goal", "update"},
		{identity.RoleEmployee, "goal", "delete"},
		{identity.RoleEmployee, "notification", "read"},
		{identity.RoleEmployee, "notification", "update"},
		{identity.RoleEmployee, "feedback", "create"},
		{identity.RoleEmployee, "feedback", "delete"},
		{identity.RoleEmployee, "settings", "read"},
		{identity.RoleEmployee, "settings", "update_self"},
		{identity.RoleEmployee, "job_posting", "read"},
		{identity.RoleEmployee, "candidate", "read"},
		{identity.RoleEmployee, "performance_review", "read"},
		{identity.RoleEmployee, "integration", "read"},

		// Manager ke atas
		{identity.RoleManager, "job_posting", "create"},
		{identity.RoleManager, "job_posting", "update"},
		{identity.RoleManager, "candidate", "create"},
		{identity.RoleManager, "candidate", "update"},
		{identity.RoleManager, "performance_review", "create"},
		{identity.RoleManager, "performance_review", "update"},
		{identity.RoleManager, "integration", "connect"},
		{identity.RoleManager, "integration", "disconnect"},

		// Admin only
		{identity.RoleAdmin, "settings", "update_org"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Can(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
