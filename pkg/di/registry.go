package di

import (
	"fmt"

	"github.com/clubify/checkout-go/modules/cart"
	"github.com/clubify/checkout-go/modules/notifications"
	"github.com/clubify/checkout-go/modules/orders"
	"github.com/clubify/checkout-go/modules/subscriptions"
	"github.com/clubify/checkout-go/modules/tenants"
	"github.com/clubify/checkout-go/modules/users"
	"github.com/clubify/checkout-go/modules/webhooks"
)

// ServiceTag identifies one domain service in the registry.
type ServiceTag string

// The closed set of service tags the registry must cover.
const (
	TagUsers         ServiceTag = "users"
	TagTenants       ServiceTag = "tenants"
	TagWebhooks      ServiceTag = "webhooks"
	TagOrders        ServiceTag = "orders"
	TagSubscriptions ServiceTag = "subscriptions"
	TagNotifications ServiceTag = "notifications"
	TagCart          ServiceTag = "cart"
)

var allTags = []ServiceTag{
	TagUsers, TagTenants, TagWebhooks, TagOrders,
	TagSubscriptions, TagNotifications, TagCart,
}

// serviceConstructors maps each tag to its factory. Dispatch goes through
// this table rather than a switch on strings, and validateRegistry checks the
// table against the closed tag set at container construction.
var serviceConstructors = map[ServiceTag]func(*Container) (any, error){
	TagUsers: func(c *Container) (any, error) {
		core, err := c.Core(users.Endpoint, users.Resource)
		if err != nil {
			return nil, err
		}
		return users.NewService(users.NewRepository(core)), nil
	},
	TagTenants: func(c *Container) (any, error) {
		core, err := c.Core(tenants.Endpoint, tenants.Resource, tenants.UnwrapPriority...)
		if err != nil {
			return nil, err
		}
		return tenants.NewService(tenants.NewRepository(core)), nil
	},
	TagWebhooks: func(c *Container) (any, error) {
		core, err := c.Core(webhooks.Endpoint, webhooks.Resource)
		if err != nil {
			return nil, err
		}
		return webhooks.NewService(webhooks.NewRepository(core)), nil
	},
	TagOrders: func(c *Container) (any, error) {
		core, err := c.Core(orders.Endpoint, orders.Resource)
		if err != nil {
			return nil, err
		}
		return orders.NewService(orders.NewRepository(core)), nil
	},
	TagSubscriptions: func(c *Container) (any, error) {
		core, err := c.Core(subscriptions.Endpoint, subscriptions.Resource)
		if err != nil {
			return nil, err
		}
		return subscriptions.NewRepository(core), nil
	},
	TagNotifications: func(c *Container) (any, error) {
		core, err := c.Core(notifications.Endpoint, notifications.Resource)
		if err != nil {
			return nil, err
		}
		return notifications.NewRepository(core), nil
	},
	TagCart: func(c *Container) (any, error) {
		core, err := c.Core(cart.Endpoint, cart.Resource)
		if err != nil {
			return nil, err
		}
		return cart.NewService(cart.NewRepository(core)), nil
	},
}

// validateRegistry verifies every known tag has a constructor and no
// constructor targets an unknown tag.
func validateRegistry() error {
	known := make(map[ServiceTag]bool, len(allTags))
	for _, tag := range allTags {
		known[tag] = true
		if _, ok := serviceConstructors[tag]; !ok {
			return fmt.Errorf("di: no constructor registered for service %q", tag)
		}
	}
	for tag := range serviceConstructors {
		if !known[tag] {
			return fmt.Errorf("di: constructor registered for unknown service %q", tag)
		}
	}
	return nil
}

// Service resolves a domain service by tag, constructing it on first use and
// memoizing it in the container's own registry.
func (c *Container) Service(tag ServiceTag) (any, error) {
	if svc, ok := c.services[tag]; ok {
		return svc, nil
	}

	ctor, ok := serviceConstructors[tag]
	if !ok {
		return nil, fmt.Errorf("di: unknown service %q", tag)
	}

	svc, err := ctor(c)
	if err != nil {
		return nil, err
	}
	c.services[tag] = svc
	return svc, nil
}

// Users returns the user management service.
func (c *Container) Users() (*users.Service, error) {
	svc, err := c.Service(TagUsers)
	if err != nil {
		return nil, err
	}
	return svc.(*users.Service), nil
}

// Tenants returns the tenant provisioning service.
func (c *Container) Tenants() (*tenants.Service, error) {
	svc, err := c.Service(TagTenants)
	if err != nil {
		return nil, err
	}
	return svc.(*tenants.Service), nil
}

// Webhooks returns the webhook subscription service.
func (c *Container) Webhooks() (*webhooks.Service, error) {
	svc, err := c.Service(TagWebhooks)
	if err != nil {
		return nil, err
	}
	return svc.(*webhooks.Service), nil
}

// Orders returns the order service.
func (c *Container) Orders() (*orders.Service, error) {
	svc, err := c.Service(TagOrders)
	if err != nil {
		return nil, err
	}
	return svc.(*orders.Service), nil
}

// Subscriptions returns the subscription repository.
func (c *Container) Subscriptions() (*subscriptions.Repository, error) {
	svc, err := c.Service(TagSubscriptions)
	if err != nil {
		return nil, err
	}
	return svc.(*subscriptions.Repository), nil
}

// Notifications returns the notification repository.
func (c *Container) Notifications() (*notifications.Repository, error) {
	svc, err := c.Service(TagNotifications)
	if err != nil {
		return nil, err
	}
	return svc.(*notifications.Repository), nil
}

// Cart returns the cart service.
func (c *Container) Cart() (*cart.Service, error) {
	svc, err := c.Service(TagCart)
	if err != nil {
		return nil, err
	}
	return svc.(*cart.Service), nil
}
