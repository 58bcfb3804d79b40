package publisher

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Menu choices.
const (
	ChoiceStaging               = "1"
	ChoiceStagingThenProduction = "2"
	ChoiceProduction            = "3"
	ChoiceExit                  = "4"
)

type driverState int

const (
	awaitingChoice driverState = iota
	stagingUpload
	awaitManualConfirm
	productionUpload
	done
)

func (s driverState) String() string {
	switch s {
	case awaitingChoice:
		return "awaiting-choice"
	case stagingUpload:
		return "staging-upload"
	case awaitManualConfirm:
		return "await-manual-confirm"
	case productionUpload:
		return "production-upload"
	case done:
		return "done"
	default:
		return "unknown"
	}
}

func (p *Publisher) printMenu() {
	p.console.Println()
	p.console.Println("Upload Options:")
	p.console.Println("1. Upload to staging index only (recommended for testing)")
	p.console.Println("2. Upload to staging index then production index")
	p.console.Println("3. Upload directly to production index (not recommended)")
	p.console.Println("4. Exit")
}

// Drive presents the upload menu and carries out the chosen branch.
// Invalid choices re-prompt. Upload failures end the branch but are
// not returned as errors; the only error is running out of input
// while waiting for a menu choice.
func (p *Publisher) Drive(ctx context.Context) error {
	p.printMenu()

	var choice string
	state := awaitingChoice

	for state != done {
		grip.Debug(message.Fields{
			"message": "menu state",
			"run":     p.runID,
			"state":   state.String(),
			"choice":  choice,
		})

		switch state {
		case awaitingChoice:
			in, err := p.console.Prompt("\nEnter your choice (1-4): ")
			if err != nil {
				return errors.Wrap(err, "problem reading menu choice")
			}

			choice = in
			switch choice {
			case ChoiceStaging, ChoiceStagingThenProduction:
				state = stagingUpload
			case ChoiceProduction:
				state = productionUpload
			case ChoiceExit:
				p.console.Println("Goodbye!")
				state = done
			default:
				p.console.Failure("Invalid choice. Please enter 1, 2, 3, or 4.")
			}
		case stagingUpload:
			res := p.Upload(ctx, Staging)
			switch {
			case choice != ChoiceStagingThenProduction:
				state = done
			case res.Success:
				state = awaitManualConfirm
			default:
				p.console.Info("Skipping the production upload. Fix the staging upload and run again.")
				state = done
			}
		case awaitManualConfirm:
			p.console.Println()
			p.console.Info("Please test your package from the staging index first:")
			if hint := p.conf.StagingInstallCommand(); hint != "" {
				p.console.Println("   " + hint)
			}

			if err := p.console.WaitForEnter("\nPress Enter when ready to upload to the production index..."); err != nil {
				p.console.Warning("No input received; skipping the production upload.")
				state = done
				continue
			}
			state = productionUpload
		case productionUpload:
			p.Upload(ctx, Production)
			state = done
		}
	}

	return nil
}
