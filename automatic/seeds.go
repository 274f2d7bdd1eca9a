package automatic

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// GenerateSeeds creates n random 32-byte deal seeds.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// DealSeed derives the seed of deal number idx from a name, so that every
// matchup of a plan, and every rerun of it, sees the same deals.
func DealSeed(name string, idx int) [32]byte {
	var seed [32]byte
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64String(fmt.Sprintf("%s/%d/%d", name, idx, i))
		binary.LittleEndian.PutUint64(seed[i*8:], h)
	}
	return seed
}

const seedsHeader = "# atout deal seeds, one per line, 32 bytes in unpadded base64url\n"

// SaveSeeds writes seeds one per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	var sb strings.Builder
	sb.WriteString(seedsHeader)
	for _, seed := range seeds {
		sb.WriteString(base64.RawURLEncoding.EncodeToString(seed[:]))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing seeds: %w", err)
	}
	return nil
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and # comments
// are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seeds: %w", err)
	}
	var seeds [][32]byte
	for n, line := range strings.Split(string(bts), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		var seed [32]byte
		if len(line) != base64.RawURLEncoding.EncodedLen(len(seed)) {
			return nil, fmt.Errorf("%w: %s:%d is not a 32-byte seed", ErrBadPlan, path, n+1)
		}
		if _, err := base64.RawURLEncoding.Decode(seed[:], []byte(line)); err != nil {
			return nil, fmt.Errorf("%w: %s:%d is not a 32-byte seed", ErrBadPlan, path, n+1)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}
