package usecase

import "github.com/kirillkom/realty-assistant/internal/core/domain"

type permissionKey struct {
	role       domain.Role
	operation  domain.Operation
	collection domain.Collection
}

// The full authorization matrix. Customers browse listings and service
// providers and file requests; realtors read requests and listings and
// publish listings. Everything else is denied.
var allowedTriples = map[permissionKey]struct{}{
	{domain.RoleCustomer, domain.OpSelect, domain.CollectionAppartments}: {},
	{domain.RoleCustomer, domain.OpSelect, domain.CollectionWorkers}:     {},
	{domain.RoleCustomer, domain.OpInsert, domain.CollectionRequests}:    {},
	{domain.RoleRealtor, domain.OpSelect, domain.CollectionRequests}:     {},
	{domain.RoleRealtor, domain.OpSelect, domain.CollectionAppartments}:  {},
	{domain.RoleRealtor, domain.OpInsert, domain.CollectionAppartments}:  {},
}

func permitted(role domain.Role, op domain.Operation, collection domain.Collection) bool {
	_, ok := allowedTriples[permissionKey{role, op, collection}]
	return ok
}
