// Package cli provides the interactive submission wizard.
package cli

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/term"

	"github.com/colbuilder-dev/colbuild/internal/models"
	"github.com/colbuilder-dev/colbuild/internal/progress"
	"github.com/colbuilder-dev/colbuild/internal/validation"
	"github.com/colbuilder-dev/colbuild/internal/wizard"
)

// runWizard drives the four-step submission wizard in the terminal. The
// wizard controller owns all state; this loop only renders the current
// step and translates answers into intents.
func (a *app) runWizard() error {
	molecule := wizard.NewMoleculePanel(a.client)
	fibril := wizard.NewFibrilPanel()
	mixed := wizard.NewMixedCrosslinkPanel()
	density := wizard.NewReducedDensityPanel()

	ctrl := wizard.NewController(a.client, []wizard.Panel{molecule, fibril, mixed, density}, GetLogger())

	for {
		var err error
		switch ctrl.Step() {
		case wizard.StepSelectType:
			err = a.stepSelectType(ctrl)
		case wizard.StepBasicInfo:
			err = a.stepBasicInfo(ctrl)
		case wizard.StepParameters:
			err = a.stepParameters(ctrl, molecule, fibril, mixed, density)
		case wizard.StepReview:
			done, reviewErr := a.stepReview(ctrl)
			if reviewErr != nil {
				return reviewErr
			}
			if done {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}
	}
}

// stepSelectType renders the job type menu.
func (a *app) stepSelectType(ctrl *wizard.Controller) error {
	fmt.Println()
	fmt.Println("Step 1/4: Job Type")

	types := models.AllJobTypes()
	options := make([]string, 0, len(types)+1)
	for _, t := range types {
		options = append(options, t.DisplayName())
	}
	options = append(options, "Quit")

	choice, err := promptChoice(a.reader, a.out, "What do you want to build?", options)
	if err != nil {
		return err
	}
	if choice == len(types) {
		return fmt.Errorf("wizard cancelled")
	}

	ctrl.Apply(wizard.SelectJobType{Type: types[choice]})
	return ctrl.Next()
}

// stepBasicInfo collects the job name and optional description. Failed
// validation re-runs the step with the rejected values shown.
func (a *app) stepBasicInfo(ctrl *wizard.Controller) error {
	fmt.Println()
	fmt.Printf("Step 2/4: Basic Info (%s)\n", ctrl.JobType().DisplayName())
	fmt.Println("Enter 'b' as the job name to go back.")

	for {
		name, err := promptRequired(a.reader, a.out, "Job name")
		if err != nil {
			return err
		}
		if name == "b" {
			ctrl.Back()
			return nil
		}
		description, err := promptLine(a.reader, a.out,
			fmt.Sprintf("Description (optional, max %d chars)", validation.MaxDescriptionLength))
		if err != nil {
			return err
		}

		ctrl.Apply(wizard.UpdateBasicInfo{JobName: name, Description: description})
		if err := ctrl.Next(); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return nil
	}
}

// stepParameters dispatches to the per-type parameter flow and applies
// the collected parameters, re-prompting while validation rejects them.
func (a *app) stepParameters(ctrl *wizard.Controller, molecule *wizard.MoleculePanel,
	fibril *wizard.FibrilPanel, mixed *wizard.MixedCrosslinkPanel, density *wizard.ReducedDensityPanel) error {

	fmt.Println()
	fmt.Printf("Step 3/4: Parameters (%s)\n", ctrl.JobType().DisplayName())

	for {
		var params map[string]interface{}
		var err error
		back := false

		// Values entered on an earlier visit to this step survive a
		// trip through Back and seed the prompts below.
		prev := ctrl.FormData().Parameters

		switch ctrl.JobType() {
		case models.JobTypeMolecule:
			params, back, err = a.collectMoleculeParams(molecule, prev)
		case models.JobTypeFibril:
			params, err = a.collectFibrilParams(fibril, prev)
		case models.JobTypeMixedCrosslink:
			params, err = a.collectMixedParams(mixed, prev)
		case models.JobTypeReducedDensity:
			params, err = a.collectDensityParams(density, prev)
		default:
			return fmt.Errorf("unsupported job type: %s", ctrl.JobType())
		}
		if err != nil {
			return err
		}
		if back {
			ctrl.Back()
			return nil
		}

		ctrl.Apply(wizard.UpdateParameters{Parameters: params})
		if err := ctrl.Next(); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return nil
	}
}

// collectMoleculeParams walks the molecule panel flow. The crosslink
// reference table must load before anything else; a failed load offers
// a retry or a step back, never a degraded panel.
func (a *app) collectMoleculeParams(panel *wizard.MoleculePanel, prev map[string]interface{}) (map[string]interface{}, bool, error) {
	for {
		ctx, cancel := opContext(requestTimeout)
		err := panel.Mount(ctx)
		cancel()
		if err == nil {
			break
		}
		fmt.Printf("  %v\n", err)
		retry, perr := promptBool(a.reader, a.out, "Retry loading reference data?", true)
		if perr != nil {
			return nil, false, perr
		}
		if !retry {
			return nil, true, nil
		}
	}

	table := panel.Table()
	params := seedParams(panel.Defaults(), prev)

	methodChoice, err := promptChoice(a.reader, a.out, "Input method:",
		[]string{"Species template", "Custom sequences"})
	if err != nil {
		return nil, false, err
	}

	if methodChoice == 1 {
		params = panel.SetInputMethod(params, wizard.InputMethodCustom)
		for _, key := range []string{wizard.ParamChainA, wizard.ParamChainB, wizard.ParamChainC} {
			label := fmt.Sprintf("%s sequence (%d-%d residues)", key, validation.MinChainLength, validation.MaxChainLength)
			var seq string
			if kept := stringParam(params, key); kept != "" {
				// Empty input keeps the previously entered sequence.
				seq, err = promptLine(a.reader, a.out, fmt.Sprintf("%s [keep current]", label))
				if seq == "" {
					seq = kept
				}
			} else {
				seq, err = promptRequired(a.reader, a.out, label)
			}
			if err != nil {
				return nil, false, err
			}
			params = panel.SetChain(params, key, seq)
		}
		return params, false, nil
	}

	params = panel.SetInputMethod(params, wizard.InputMethodSpecies)

	speciesChoice, err := promptChoice(a.reader, a.out, "Species:", table.Species())
	if err != nil {
		return nil, false, err
	}
	species := table.Species()[speciesChoice]
	params = panel.SetSpecies(params, species)

	enable, err := promptBool(a.reader, a.out, "Configure terminal crosslinks?",
		boolParam(params, wizard.ParamEnableCrosslinks))
	if err != nil {
		return nil, false, err
	}
	params = panel.SetCrosslinksEnabled(params, enable)
	if !enable {
		return params, false, nil
	}

	for _, terminal := range []models.Terminal{models.TerminalN, models.TerminalC} {
		types := table.Types(species, terminal)
		typeChoice, err := promptChoice(a.reader, a.out,
			fmt.Sprintf("%s-terminal crosslink type:", terminal), types)
		if err != nil {
			return nil, false, err
		}
		crosslinkType := types[typeChoice]
		params = panel.SetTerminalType(params, terminal, crosslinkType)
		if crosslinkType == models.CrosslinkTypeNone {
			continue
		}

		positions := table.Positions(species, terminal, crosslinkType)
		posChoice, err := promptChoice(a.reader, a.out,
			fmt.Sprintf("%s-terminal position:", terminal), positions)
		if err != nil {
			return nil, false, err
		}
		params = panel.SetTerminalPosition(params, terminal, positions[posChoice])
	}

	return params, false, nil
}

// collectFibrilParams prompts for the standard fibril geometry.
func (a *app) collectFibrilParams(panel *wizard.FibrilPanel, prev map[string]interface{}) (map[string]interface{}, error) {
	params := seedParams(panel.Defaults(), prev)

	distance, err := promptFloat(a.reader, a.out,
		fmt.Sprintf("Contact distance in nm (%g-%g)", validation.MinContactDistance, validation.MaxContactDistance),
		params[wizard.ParamContactDistance].(float64))
	if err != nil {
		return nil, err
	}
	params[wizard.ParamContactDistance] = distance

	length, err := promptFloat(a.reader, a.out,
		fmt.Sprintf("Fibril length in nm (%g-%g)", validation.MinFibrilLength, validation.MaxFibrilLength),
		params[wizard.ParamFibrilLength].(float64))
	if err != nil {
		return nil, err
	}
	params[wizard.ParamFibrilLength] = length

	useGromacs, err := promptBool(a.reader, a.out, "Prepare GROMACS topology?",
		boolParam(params, wizard.ParamUseGromacs))
	if err != nil {
		return nil, err
	}
	params[wizard.ParamUseGromacs] = useGromacs
	if useGromacs {
		choice, err := promptChoice(a.reader, a.out, "Force field:", wizard.ForceFields)
		if err != nil {
			return nil, err
		}
		params[wizard.ParamForceField] = wizard.ForceFields[choice]
	}

	return params, nil
}

// collectMixedParams prompts for the crosslink mix, one type at a time,
// until the entered percentages are meant to cover the structure.
func (a *app) collectMixedParams(panel *wizard.MixedCrosslinkPanel, prev map[string]interface{}) (map[string]interface{}, error) {
	params := seedParams(panel.Defaults(), prev)

	patternChoice, err := promptChoice(a.reader, a.out, "Mix pattern:", wizard.MixPatterns)
	if err != nil {
		return nil, err
	}
	params[wizard.ParamMixPattern] = wizard.MixPatterns[patternChoice]

	if mix, ok := params[wizard.ParamCrosslinkMix].(map[string]float64); ok && len(mix) > 0 {
		fmt.Fprintln(a.out, "Current mix:")
		names := make([]string, 0, len(mix))
		for name := range mix {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(a.out, "  %s: %g%%\n", name, mix[name])
		}
		keep, err := promptBool(a.reader, a.out, "Keep these percentages?", true)
		if err != nil {
			return nil, err
		}
		if keep {
			return params, nil
		}
		delete(params, wizard.ParamCrosslinkMix)
	}

	fmt.Fprintln(a.out, "Enter crosslink types and their percentages. Percentages must sum to 100.")
	for {
		name, err := promptLine(a.reader, a.out, "Crosslink type (blank to finish)")
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		percent, err := promptFloat(a.reader, a.out, fmt.Sprintf("Percentage for %s", name), 0)
		if err != nil {
			return nil, err
		}
		params = panel.SetRatio(params, name, percent)
	}

	return params, nil
}

// collectDensityParams prompts for the target density.
func (a *app) collectDensityParams(panel *wizard.ReducedDensityPanel, prev map[string]interface{}) (map[string]interface{}, error) {
	params := seedParams(panel.Defaults(), prev)

	target, err := promptFloat(a.reader, a.out, "Target density in percent (0-100]",
		params[wizard.ParamTargetDensity].(float64))
	if err != nil {
		return nil, err
	}
	params[wizard.ParamTargetDensity] = target

	return params, nil
}

// seedParams lays previously entered values over the panel defaults so a
// return to this step re-prompts with what the user already chose.
func seedParams(defaults, prev map[string]interface{}) map[string]interface{} {
	for k, v := range prev {
		if v != nil {
			defaults[k] = v
		}
	}
	return defaults
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

// stepReview renders the summary and offers submit, back or cancel.
// Returns done=true when the wizard is finished (submitted or cancelled).
func (a *app) stepReview(ctrl *wizard.Controller) (bool, error) {
	fmt.Println()
	fmt.Println("Step 4/4: Review")
	printReview(ctrl)

	choice, err := promptChoice(a.reader, a.out, "Ready to submit?",
		[]string{"Submit", "Back", "Cancel"})
	if err != nil {
		return false, err
	}

	switch choice {
	case 1:
		ctrl.Back()
		return false, nil
	case 2:
		fmt.Println("Wizard cancelled. Nothing was submitted.")
		return true, nil
	}

	ctx, cancel := opContext(submitTimeout)
	outcome := ctrl.Submit(ctx)
	cancel()

	if !outcome.Success {
		// Entered data is preserved; the user stays on Review.
		fmt.Printf("Submission failed: %s\n", outcome.Message)
		return false, nil
	}

	fmt.Printf("Job %s submitted.\n", outcome.JobID)

	track, err := promptBool(a.reader, a.out, "Track it now?", true)
	if err != nil || !track {
		fmt.Printf("Track later with: colbuild jobs track %s\n", outcome.JobID)
		return true, nil
	}

	var reporter progress.Reporter = progress.NewNoOpProgress()
	if term.IsTerminal(int(os.Stderr.Fd())) {
		reporter = progress.NewCLIProgress()
	}
	return true, a.trackJob(GetContext(), outcome.JobID, reporter)
}

// printReview renders the accumulated form data.
func printReview(ctrl *wizard.Controller) {
	form := ctrl.FormData()

	fmt.Printf("  Job type:    %s\n", ctrl.JobType().DisplayName())
	fmt.Printf("  Job name:    %s\n", form.JobName)
	if form.Description != "" {
		fmt.Printf("  Description: %s\n", form.Description)
	}
	fmt.Println("  Parameters:")

	keys := make([]string, 0, len(form.Parameters))
	for k := range form.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := form.Parameters[k]
		if v == nil {
			continue
		}
		fmt.Printf("    %s: %v\n", k, v)
	}
}
