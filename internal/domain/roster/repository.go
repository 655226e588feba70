package roster

import "context"

// Repository describes roster storage needs from use cases. Entries are
// addressed by insertion-order index. Implementations must serialize
// mutations so concurrent index shifts cannot interleave; Mutate runs fn
// under the same exclusion as the write it produces.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	Get(ctx context.Context, index int) (Player, bool, error)
	Append(ctx context.Context, p Player) error
	Mutate(ctx context.Context, index int, fn func(Player) (Player, error)) (Player, bool, error)
	Remove(ctx context.Context, index int) (Player, bool, error)
}
