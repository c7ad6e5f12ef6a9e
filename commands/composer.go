package commands

import "context"

// Handler processes an update that passed every filter of a command's chain.
type Handler func(ctx context.Context, c *Context) error

// Predicate guards a handler chain. A false result skips the chain; an error
// aborts the whole dispatch.
type Predicate func(ctx context.Context, c *Context) (bool, error)

// chain is an ordered predicate list guarding a single handler. The first
// failing predicate short-circuits the rest of the chain.
type chain struct {
	predicates []Predicate
	handler    Handler
}

// run reports whether the chain handled the update.
func (ch chain) run(ctx context.Context, c *Context) (bool, error) {
	for _, p := range ch.predicates {
		ok, err := p(ctx, c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	if ch.handler == nil {
		return false, nil
	}
	return true, ch.handler(ctx, c)
}
