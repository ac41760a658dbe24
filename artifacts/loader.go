package artifacts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tidwall/gjson"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
)

// Loader reads compiled contract artifacts and extracts their creation bytecode.
type Loader struct {
	resolver Resolver
	logger   log.Logger
}

// NewLoader creates a Loader resolving artifact sources against baseDir.
func NewLoader(baseDir string, logger log.Logger) *Loader {
	return &Loader{
		resolver: NewResolver(baseDir),
		logger:   logger.With("module", "artifacts"),
	}
}

// Load reads every target in order and returns the bytecode keyed by target
// name. The first failure aborts the whole load and no partial result is
// returned.
func (l *Loader) Load(targets []types.Target) (map[string]types.Bytecode, error) {
	bytecodes := make(map[string]types.Bytecode, len(targets))
	for _, target := range targets {
		if _, found := bytecodes[target.Name]; found {
			return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "duplicate target %q", target.Name)
		}

		bc, err := l.LoadTarget(target)
		if err != nil {
			return nil, err
		}
		bytecodes[target.Name] = bc
	}
	return bytecodes, nil
}

// LoadTarget resolves and parses the artifact of a single target.
func (l *Loader) LoadTarget(target types.Target) (types.Bytecode, error) {
	path, err := l.resolver.Resolve(target.Source)
	if err != nil {
		return types.Bytecode{}, errorsmod.Wrapf(err, "target %s", target.Name)
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrSourceResolution, "target %s: %s", target.Name, err)
	}

	bc, err := ParseBytecode(target.Name, contents, target.Field)
	if err != nil {
		return types.Bytecode{}, errorsmod.Wrapf(err, "artifact %s", path)
	}

	l.logger.Info(
		"loaded artifact",
		"name", bc.Name,
		"path", path,
		"size", bc.Size(),
		"code_hash", bc.CodeHash.Hex(),
	)
	return bc, nil
}

// ParseBytecode extracts the creation bytecode from an artifact document.
//
// With an empty field the Hardhat layout ("bytecode": "0x...") is tried
// first, then the Foundry layout ("bytecode": {"object": "0x..."}). The value
// must be a string of the form 0x<hex digits>; the prefix is stripped and the
// digits are returned as supplied.
func ParseBytecode(name string, contents []byte, field string) (types.Bytecode, error) {
	if !gjson.ValidBytes(contents) {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: invalid JSON", name)
	}

	if field == "" {
		field = types.DefaultBytecodeField
		if gjson.GetBytes(contents, field).IsObject() {
			field += ".object"
		}
	}

	res := gjson.GetBytes(contents, field)
	if !res.Exists() {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: missing %q field", name, field)
	}
	if res.Type != gjson.String {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: %q field is not a string", name, field)
	}

	raw := res.String()
	if !strings.HasPrefix(raw, types.HexPrefix) {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: %q field lacks %s prefix", name, field, types.HexPrefix)
	}
	digits := strings.TrimPrefix(raw, types.HexPrefix)
	if digits == "" {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: %q field is empty", name, field)
	}

	code, err := hexutil.Decode(raw)
	if err != nil {
		return types.Bytecode{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: %q field: %s", name, field, err)
	}

	return types.Bytecode{
		Name:     name,
		Hex:      digits,
		CodeHash: crypto.Keccak256Hash(code),
	}, nil
}
