package reskey

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
	"sync/atomic"
)

// Domain tags the kind of object a key identifies. Keys of different
// domains never compare equal even when their words match.
type Domain uint16

// Built-in domains.
const (
	DomainInvalid Domain = iota
	DomainGraphicsPipeline
	DomainRenderPass
	DomainTexture
	DomainSampler

	firstDynamicDomain
)

var nextDomain atomic.Uint32

func init() {
	nextDomain.Store(uint32(firstDynamicDomain))
}

// NewDomain allocates a domain for a collaborator's own resource kind
// (buffers, bind groups, ...). It panics when the 16-bit domain space is
// exhausted.
func NewDomain() Domain {
	d := nextDomain.Add(1) - 1
	if d > 0xFFFF {
		panic("reskey: domain space exhausted")
	}
	return Domain(d)
}

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case DomainInvalid:
		return "Invalid"
	case DomainGraphicsPipeline:
		return "GraphicsPipeline"
	case DomainRenderPass:
		return "RenderPass"
	case DomainTexture:
		return "Texture"
	case DomainSampler:
		return "Sampler"
	default:
		return fmt.Sprintf("Domain(%d)", uint16(d))
	}
}

// Shareable controls whether an object found through a key may be handed to
// more than one owner at a time.
type Shareable uint8

// Shareable modes.
const (
	ShareableNo Shareable = iota
	ShareableYes
)

// ResourceKey is a domain-tagged, fixed-length sequence of 32-bit words.
//
// ResourceKey is comparable and can be used directly as a map key; two keys
// are equal when domain, shareable mode and every word match. The zero value
// is the invalid key.
type ResourceKey struct {
	domain    Domain
	shareable Shareable

	// data holds the words little-endian; a string keeps the key immutable
	// and comparable.
	data string
}

// IsValid reports whether the key was produced by a Builder.
func (k ResourceKey) IsValid() bool {
	return k.domain != DomainInvalid
}

// Domain returns the key's domain tag.
func (k ResourceKey) Domain() Domain {
	return k.domain
}

// Shareable returns the key's shareable mode.
func (k ResourceKey) Shareable() Shareable {
	return k.shareable
}

// Len returns the number of words.
func (k ResourceKey) Len() int {
	return len(k.data) / 4
}

// Word returns word i. It panics when i is out of range.
func (k ResourceKey) Word(i int) uint32 {
	if i < 0 || i >= k.Len() {
		panic(fmt.Sprintf("reskey: word %d out of range [0, %d)", i, k.Len()))
	}
	return binary.LittleEndian.Uint32([]byte(k.data[4*i : 4*i+4]))
}

// Words returns a copy of the key's words.
func (k ResourceKey) Words() []uint32 {
	out := make([]uint32, k.Len())
	for i := range out {
		out[i] = k.Word(i)
	}
	return out
}

// Hash returns the FNV-1a hash of the domain, shareable mode and words.
func (k ResourceKey) Hash() uint64 {
	h := fnv.New64a()
	var hdr [3]byte
	binary.LittleEndian.PutUint16(hdr[:2], uint16(k.domain))
	hdr[2] = byte(k.shareable)
	_, _ = h.Write(hdr[:]) // fnv.Write never returns an error
	_, _ = h.Write([]byte(k.data))
	return h.Sum64()
}

// String returns a short description for logs.
func (k ResourceKey) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v[", k.domain)
	for i := 0; i < k.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08x", k.Word(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Builder fills the words of one key. The word count is fixed when the
// builder is created; writing more or fewer words is a programming error.
type Builder struct {
	domain    Domain
	shareable Shareable
	buf       []byte
	n         int
	finished  bool
}

// NewBuilder starts a key of exactly wordCount words.
func NewBuilder(domain Domain, wordCount int, shareable Shareable) *Builder {
	if domain == DomainInvalid {
		panic("reskey: builder needs a valid domain")
	}
	if wordCount <= 0 {
		panic(fmt.Sprintf("reskey: invalid word count %d", wordCount))
	}
	return &Builder{
		domain:    domain,
		shareable: shareable,
		buf:       make([]byte, 4*wordCount),
	}
}

// Add appends the next word. It panics past the declared word count.
func (b *Builder) Add(word uint32) *Builder {
	if b.finished {
		panic("reskey: Add after Finish")
	}
	if b.n >= len(b.buf)/4 {
		panic(fmt.Sprintf("reskey: key overflow, %d words declared", len(b.buf)/4))
	}
	binary.LittleEndian.PutUint32(b.buf[4*b.n:], word)
	b.n++
	return b
}

// Finish returns the key. It panics if fewer words were added than declared.
func (b *Builder) Finish() ResourceKey {
	if b.n != len(b.buf)/4 {
		panic(fmt.Sprintf("reskey: key has %d of %d words", b.n, len(b.buf)/4))
	}
	b.finished = true
	return ResourceKey{
		domain:    b.domain,
		shareable: b.shareable,
		data:      string(b.buf),
	}
}
