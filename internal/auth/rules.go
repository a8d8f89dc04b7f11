package auth

import "github.com/praceando/event-platform/internal/domain"

func anyConsumerOrAdvertiser() []domain.RoleName {
	return []domain.RoleName{
		domain.RoleConsumer,
		domain.RoleConsumerPremium,
		domain.RoleAdvertiser,
		domain.RoleAdvertiserPremium,
	}
}

func consumers() []domain.RoleName {
	return []domain.RoleName{domain.RoleConsumer, domain.RoleConsumerPremium}
}

func advertisers() []domain.RoleName {
	return []domain.RoleName{domain.RoleAdvertiser, domain.RoleAdvertiserPremium}
}

// DefaultRules is the static route policy table. Order does not matter for
// overlapping prefixes (the matcher resolves by specificity); anything not
// listed here is denied.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/api/auth/**", Public: true},
		{Pattern: "/swagger-ui/**", Public: true},
		{Pattern: "/v3/api-docs/**", Public: true},
		{Pattern: "/health/**", Public: true},

		// account creation is reserved for callers still logged out
		{Pattern: "/api/anunciante/create", Roles: []domain.RoleName{domain.RoleLoggedOut}},
		{Pattern: "/api/consumidor/create", Roles: []domain.RoleName{domain.RoleLoggedOut}},

		{Pattern: "/api/compra/**", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/pagamento/**", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/interesse/**", Roles: anyConsumerOrAdvertiser()},

		{Pattern: "/api/consumidor/read", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/consumidor/find/**", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/anunciante/read", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/anunciante/find/**", Roles: anyConsumerOrAdvertiser()},

		// advertisers manage events; the read/find surface belongs to consumers
		{Pattern: "/api/evento/**", Roles: advertisers()},
		{Pattern: "/api/evento/read", Roles: consumers()},
		{Pattern: "/api/evento/find/**", Roles: consumers()},

		{Pattern: "/api/produto/read", Roles: advertisers()},
		{Pattern: "/api/produto/find/**", Roles: advertisers()},

		{Pattern: "/api/local/read", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/local/find/**", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/tag/read", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/tag/find/**", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/fraseSustentavel/read", Roles: anyConsumerOrAdvertiser()},
		{Pattern: "/api/genero/read", Roles: anyConsumerOrAdvertiser()},

		// user and role administration
		{Pattern: "/api/usuario/**", Roles: []domain.RoleName{domain.RoleAdmin}},
		{Pattern: "/api/acesso/**", Roles: []domain.RoleName{domain.RoleAdmin}},
	}
}
