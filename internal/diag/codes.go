package diag

import "fmt"

// Code identifies the kind of a diagnostic independent of its message text.
type Code uint16

const (
	UnknownCode Code = 0

	// Name resolution.
	SemaUndefinedName   Code = 1001
	SemaTypeUsedAsValue Code = 1002

	// Assignability / type mismatch.
	SemaArgumentTypeMismatch Code = 1100
	SemaAssignmentMismatch   Code = 1101
	SemaIncompatibleReturn   Code = 1102

	// Member access.
	SemaNoSuchMember        Code = 1200
	SemaOptionalMemberAccess Code = 1201
	SemaCannotSetMember     Code = 1202
	SemaCannotDeleteMember  Code = 1203

	// Subscription / call targets.
	SemaNotSubscriptable  Code = 1300
	SemaOptionalSubscript Code = 1301
	SemaNotCallable       Code = 1302
	SemaOptionalCall      Code = 1303

	// Call argument validation (PEP 3102).
	SemaTooManyPositional  Code = 1400
	SemaArgumentMissing    Code = 1401
	SemaArgumentAlready    Code = 1402
	SemaNoParameterNamed   Code = 1403
	SemaNoOverloadMatches  Code = 1404
	SemaExpectedNoArgs     Code = 1405

	// Generic / special-form synthesis.
	SemaWrongArity                 Code = 1500
	SemaDuplicateTypeVar           Code = 1501
	SemaTypeVarBoundAndCons        Code = 1502
	SemaTypeVarVariance            Code = 1503
	SemaBadEllipsis                Code = 1504
	SemaDataclassFieldOrder        Code = 1505
	SemaDuplicateFieldName         Code = 1506
	SemaEmptyFieldName             Code = 1507
	SemaDataclassLeadingUnderscore Code = 1508

	// Internal invariant failures (programming errors, never user-facing).
	SemaInternal Code = 1900
)

var codeNames = map[Code]string{
	UnknownCode:                    "unknown",
	SemaUndefinedName:              "undefined-name",
	SemaTypeUsedAsValue:            "type-used-as-value",
	SemaArgumentTypeMismatch:       "argument-type-mismatch",
	SemaAssignmentMismatch:         "assignment-mismatch",
	SemaIncompatibleReturn:         "incompatible-return",
	SemaNoSuchMember:               "no-such-member",
	SemaOptionalMemberAccess:       "optional-member-access",
	SemaCannotSetMember:            "cannot-set-member",
	SemaCannotDeleteMember:         "cannot-delete-member",
	SemaNotSubscriptable:           "not-subscriptable",
	SemaOptionalSubscript:          "optional-subscript",
	SemaNotCallable:                "not-callable",
	SemaOptionalCall:               "optional-call",
	SemaTooManyPositional:          "too-many-positional",
	SemaArgumentMissing:            "argument-missing",
	SemaArgumentAlready:            "argument-already-assigned",
	SemaNoParameterNamed:           "no-parameter-named",
	SemaNoOverloadMatches:          "no-overload-matches",
	SemaExpectedNoArgs:             "expected-no-args",
	SemaWrongArity:                 "wrong-arity",
	SemaDuplicateTypeVar:           "duplicate-type-var",
	SemaTypeVarBoundAndCons:        "typevar-bound-and-constrained",
	SemaTypeVarVariance:            "typevar-variance-conflict",
	SemaBadEllipsis:                "bad-ellipsis",
	SemaDataclassFieldOrder:        "dataclass-field-order",
	SemaDuplicateFieldName:         "duplicate-field-name",
	SemaEmptyFieldName:             "empty-field-name",
	SemaDataclassLeadingUnderscore: "dataclass-leading-underscore",
	SemaInternal:                   "internal",
}

// ID returns a stable, human-readable identifier for the code, suitable for
// golden-file output and machine-readable diagnostic formats.
func (c Code) ID() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code-%d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
