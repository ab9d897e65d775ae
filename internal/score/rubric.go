package score

// Rubric is shown to scorers before they rate blind items.
const Rubric = `Rate each solution on five dimensions, 1 (poor) to 5 (excellent):

  edge_cases      Does the code handle empty inputs, boundaries, and
                  unusual values?
  error_handling  Does the code validate inputs and fail clearly when
                  it cannot proceed?
  idiomaticity    Is the code written the way a fluent practitioner
                  would write it?
  documentation   Are names, comments, and docstrings clear and useful?
  ship_it         Would you merge this as-is into a production codebase?

Enter five comma-separated scores, for example: 3,2,4,3,3`
