package anthropic

// DefaultCacheTTL covers the lifetime of a single report run.
const DefaultCacheTTL = "5m"

// BuildCachedSystemBlocks returns the system prompt as two blocks: the
// instruction text, then the shared context with a cache breakpoint. Requests
// that repeat the same context within the TTL read it from the prompt cache.
// An empty context yields only the instruction block, uncached.
func BuildCachedSystemBlocks(instructions, context string) []SystemBlock {
	blocks := []SystemBlock{{Text: instructions}}
	if context == "" {
		return blocks
	}
	return append(blocks, SystemBlock{
		Text:         context,
		CacheControl: &CacheControl{TTL: DefaultCacheTTL},
	})
}
