package reveal

import "strings"

const (
	transitionClasses = "transform-gpu transition-all duration-700 ease-out"
	shownClasses      = "opacity-100 translate-y-0"
	hiddenClasses     = "opacity-0 translate-y-2"
	// Users asking for reduced motion get the final state without a transition.
	reducedMotionClasses = "motion-reduce:transition-none motion-reduce:transform-none"
)

// Classes returns the utility classes for a revealed or hidden element.
func Classes(shown bool) string {
	state := hiddenClasses
	if shown {
		state = shownClasses
	}
	return strings.Join([]string{transitionClasses, state, reducedMotionClasses}, " ")
}
