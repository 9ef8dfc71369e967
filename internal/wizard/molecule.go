package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/validation"
)

// Parameter keys for molecule jobs. These are the wire names the backend's
// molecule handler expects.
const (
	ParamInputMethod       = "inputMethod"
	ParamSpecies           = "species"
	ParamChainA            = "chainA"
	ParamChainB            = "chainB"
	ParamChainC            = "chainC"
	ParamEnableCrosslinks  = "enableCrosslinks"
	ParamNTerminalType     = "nTerminalType"
	ParamNTerminalPosition = "nTerminalPosition"
	ParamCTerminalType     = "cTerminalType"
	ParamCTerminalPosition = "cTerminalPosition"
)

// Input methods for the molecule panel.
const (
	InputMethodSpecies = "species"
	InputMethodCustom  = "custom"
)

// ReferenceLoader fetches the crosslink reference table.
type ReferenceLoader interface {
	GetCrosslinksData(ctx context.Context) (*models.CrosslinkTable, error)
}

// MoleculePanel validates molecule job parameters. Terminal-crosslink
// selection depends on reference data fetched once on mount; without it the
// panel blocks progression (fail-closed), since crosslink choices would be
// meaningless.
type MoleculePanel struct {
	loader ReferenceLoader

	mu    sync.Mutex
	table *models.CrosslinkTable
}

// NewMoleculePanel creates an unmounted molecule panel.
func NewMoleculePanel(loader ReferenceLoader) *MoleculePanel {
	return &MoleculePanel{loader: loader}
}

// JobType implements Panel.
func (p *MoleculePanel) JobType() models.JobType {
	return models.JobTypeMolecule
}

// Mount fetches the crosslink reference table. The table is fetched at most
// once; repeated calls after a success are no-ops, and a failed fetch can be
// retried by calling Mount again.
func (p *MoleculePanel) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.table != nil {
		return nil
	}
	table, err := p.loader.GetCrosslinksData(ctx)
	if err != nil {
		return fmt.Errorf("failed to load crosslink reference data: %w", err)
	}
	p.table = table
	return nil
}

// Table returns the reference table, or nil before a successful Mount.
func (p *MoleculePanel) Table() *models.CrosslinkTable {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table
}

// Defaults returns the initial parameter set for a fresh molecule job.
func (p *MoleculePanel) Defaults() map[string]interface{} {
	return map[string]interface{}{
		ParamInputMethod:       InputMethodSpecies,
		ParamEnableCrosslinks:  false,
		ParamNTerminalType:     models.CrosslinkTypeNone,
		ParamNTerminalPosition: nil,
		ParamCTerminalType:     models.CrosslinkTypeNone,
		ParamCTerminalPosition: nil,
	}
}

// SetInputMethod switches between species and custom input. Changing the
// method resets all crosslink selections so stale positions cannot survive
// into a context where they are invalid.
func (p *MoleculePanel) SetInputMethod(params map[string]interface{}, method string) map[string]interface{} {
	next := CloneParams(params)
	if paramString(next, ParamInputMethod) != method {
		next = resetCrosslinks(next)
		// Custom sequences have no reference positions, so the mixed
		// terminal configuration is unavailable, not just hidden.
		if method == InputMethodCustom {
			next[ParamEnableCrosslinks] = false
		}
	}
	next[ParamInputMethod] = method
	return next
}

// SetSpecies selects the species template. Changing species resets all
// crosslink selections: positions are only meaningful for the species they
// were chosen from.
func (p *MoleculePanel) SetSpecies(params map[string]interface{}, species string) map[string]interface{} {
	next := CloneParams(params)
	if paramString(next, ParamSpecies) != species {
		next = resetCrosslinks(next)
	}
	next[ParamSpecies] = species
	return next
}

// SetChain stores one custom chain sequence, case-normalized to uppercase.
func (p *MoleculePanel) SetChain(params map[string]interface{}, key, sequence string) map[string]interface{} {
	next := CloneParams(params)
	next[key] = validation.NormalizeChain(sequence)
	return next
}

// SetCrosslinksEnabled toggles terminal crosslink configuration. Disabling
// resets the selections.
func (p *MoleculePanel) SetCrosslinksEnabled(params map[string]interface{}, enabled bool) map[string]interface{} {
	next := CloneParams(params)
	if !enabled {
		next = resetCrosslinks(next)
	}
	next[ParamEnableCrosslinks] = enabled
	return next
}

// SetTerminalType selects the crosslink type for one terminal. Changing the
// type clears that terminal's position, which must be re-picked from the
// reference table.
func (p *MoleculePanel) SetTerminalType(params map[string]interface{}, terminal models.Terminal, crosslinkType string) map[string]interface{} {
	next := CloneParams(params)
	typeKey, posKey := terminalKeys(terminal)
	if paramString(next, typeKey) != crosslinkType {
		next[posKey] = nil
	}
	next[typeKey] = crosslinkType
	return next
}

// SetTerminalPosition selects the position for one terminal's crosslink.
func (p *MoleculePanel) SetTerminalPosition(params map[string]interface{}, terminal models.Terminal, position string) map[string]interface{} {
	next := CloneParams(params)
	_, posKey := terminalKeys(terminal)
	next[posKey] = position
	return next
}

// Validate implements Panel. Rules are evaluated at the Next action, not on
// every keystroke.
func (p *MoleculePanel) Validate(params map[string]interface{}) error {
	table := p.Table()
	if table == nil {
		return fmt.Errorf("crosslink reference data is not loaded")
	}

	method := paramString(params, ParamInputMethod)
	switch method {
	case InputMethodSpecies:
		return p.validateSpeciesInput(table, params)
	case InputMethodCustom:
		return p.validateCustomInput(params)
	default:
		return fmt.Errorf("invalid input method: %q", method)
	}
}

func (p *MoleculePanel) validateSpeciesInput(table *models.CrosslinkTable, params map[string]interface{}) error {
	species := paramString(params, ParamSpecies)
	if species == "" {
		return fmt.Errorf("a species must be selected")
	}
	if !table.HasSpecies(species) {
		return fmt.Errorf("unknown species: %q", species)
	}

	if !paramBool(params, ParamEnableCrosslinks) {
		return nil
	}

	for _, terminal := range []models.Terminal{models.TerminalN, models.TerminalC} {
		typeKey, posKey := terminalKeys(terminal)
		crosslinkType := paramString(params, typeKey)
		if crosslinkType == "" || crosslinkType == models.CrosslinkTypeNone {
			continue
		}
		position := paramString(params, posKey)
		if position == "" {
			return fmt.Errorf("%s-terminal position is required when a crosslink type is selected", terminal)
		}
		if !table.HasPosition(species, terminal, crosslinkType, position) {
			return fmt.Errorf("position %q is not valid for %s-terminal %s crosslinks in %s",
				position, terminal, crosslinkType, species)
		}
	}
	return nil
}

func (p *MoleculePanel) validateCustomInput(params map[string]interface{}) error {
	// Mixed terminal crosslinks are unavailable for custom sequences.
	// Enforced here, not merely hidden in the UI.
	if paramBool(params, ParamEnableCrosslinks) {
		return fmt.Errorf("terminal crosslinks are not available for custom sequences")
	}
	for _, key := range []string{ParamChainA, ParamChainB, ParamChainC} {
		if err := validation.ValidateChain(key, paramString(params, key)); err != nil {
			return err
		}
	}
	return nil
}

// resetCrosslinks clears every crosslink selection back to NONE/null.
func resetCrosslinks(params map[string]interface{}) map[string]interface{} {
	params[ParamNTerminalType] = models.CrosslinkTypeNone
	params[ParamNTerminalPosition] = nil
	params[ParamCTerminalType] = models.CrosslinkTypeNone
	params[ParamCTerminalPosition] = nil
	return params
}

func terminalKeys(terminal models.Terminal) (typeKey, posKey string) {
	if terminal == models.TerminalN {
		return ParamNTerminalType, ParamNTerminalPosition
	}
	return ParamCTerminalType, ParamCTerminalPosition
}

// paramString reads a string parameter, tolerating missing or null values.
func paramString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// paramBool reads a bool parameter, tolerating missing or null values.
func paramBool(params map[string]interface{}, key string) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return false
}
