package explain

// Builtin returns the rule table the oracle ships with.
//
// Rules are grouped by language and ordered from specific to general
// inside each group, because lookup stops at the first hit. Keep new
// rules close to their group and mind the order.
func Builtin() *Table {
	return NewTable(builtinRules...)
}

var builtinRules = []Rule{
	// --- python ---
	MustRule("python",
		`NameError: (.+) is not defined`,
		"Python hit a name it has never seen before.\n"+
			"Usually this is a typo, or the variable is assigned further down the file than where you use it.\n"+
			"Check the spelling first, then make sure the assignment runs before this line.\n"+
			"If the name lives in another module, you are probably missing an import."),
	MustRule("python",
		`(?i)IndentationError`,
		"Python uses indentation instead of braces, so every block must line up exactly.\n"+
			"One line here is indented differently from its neighbours, or mixes tabs with spaces.\n"+
			"Re-indent the block with a single style (four spaces is the usual choice) and the error goes away."),
	MustRule("python",
		`TypeError: '(\w+)' object is not (callable|subscriptable|iterable)`,
		"You used a value as if it were a different kind of thing.\n"+
			"\"Not callable\" means you put parentheses after something that is not a function,\n"+
			"\"not subscriptable\" means square brackets on something that is not a sequence or dict,\n"+
			"and \"not iterable\" means a for-loop over something that cannot be looped.\n"+
			"Print the value (or its type()) right before this line; it is rarely what you think it is."),
	MustRule("python",
		`TypeError: unsupported operand type\(s\)`,
		"An operator got two values it cannot combine, like adding a string to a number.\n"+
			"Python never converts types silently, so you have to do it yourself.\n"+
			"Wrap one side in str(), int() or float(), whichever direction you actually mean."),
	MustRule("python",
		`ZeroDivisionError`,
		"Somewhere on this line a divisor worked out to zero.\n"+
			"Often the interesting question is not the division itself but why the value became zero.\n"+
			"Guard the division with a check, or trace back where the divisor is computed."),
	MustRule("python",
		`ModuleNotFoundError|ImportError`,
		"Python could not import a module.\n"+
			"Either the package is not installed in the interpreter you are running (check with pip show),\n"+
			"or the module name is misspelled, or your virtual environment is not activated.\n"+
			"Note that the install name and the import name sometimes differ (pillow vs PIL)."),
	MustRule("python",
		`AttributeError: '(\w+)' object has no attribute '(\w+)'`,
		"The value on the left of the dot has no attribute with that name.\n"+
			"Two usual causes: the value is of a different type than you expect (None is a classic),\n"+
			"or the attribute name has a typo. Check the type first; an unexpected None means a call\n"+
			"earlier in the flow returned nothing."),
	MustRule("python",
		`KeyError`,
		"A dictionary lookup used a key that is not in the dict.\n"+
			"Use .get(key) when a missing key is normal, or check with \"key in d\" before indexing.\n"+
			"Watch out for type mixups too: d[1] and d[\"1\"] are different keys."),
	MustRule("python",
		`IndexError`,
		"A sequence index points past the end of the list or string.\n"+
			"Remember indexes start at zero, so the last element is len(x) - 1.\n"+
			"If the index is computed, print it together with len(x) right before this line."),
	MustRule("python",
		`(?i)unexpected EOF while parsing|was never closed`,
		"The file ended while Python was still waiting for something to be closed.\n"+
			"Count your brackets and quotes upwards from the reported line; the real omission\n"+
			"is almost always above the place the parser finally gave up."),

	// --- typescript ---
	MustRule("typescript",
		`Cannot find name '([^']+)'`,
		"TypeScript does not know this identifier.\n"+
			"Check the spelling, including case: myValue and myvalue are different names.\n"+
			"If it comes from another file, you are missing an import; if it is a global\n"+
			"(like process or describe), you likely need the matching @types package."),
	MustRule("typescript",
		`Type '(.+)' is not assignable to type`,
		"You are putting a value into a slot whose declared type does not accept it.\n"+
			"Read the two types in the message carefully; the mismatch is often one property deep.\n"+
			"Fix the value or widen the declared type. Reaching for \"as\" just hides the problem\n"+
			"and it will come back at runtime."),
	MustRule("typescript",
		`Property '([^']+)' does not exist on type`,
		"The type of the object, as TypeScript sees it, has no such property.\n"+
			"Either the object really lacks it (typo, wrong object), or the type is declared\n"+
			"too narrowly. Hover the object to see its inferred type; that usually settles which\n"+
			"side is wrong."),
	MustRule("typescript",
		`Object is possibly '(undefined|null)'`,
		"This value may be undefined or null at this point, and you are using it as if it never is.\n"+
			"Narrow it first: an if-check, optional chaining (obj?.prop), or a default (value ?? fallback).\n"+
			"The non-null \"!\" suffix silences the compiler without protecting the runtime, so prefer a real check."),
	MustRule("typescript",
		`Cannot find module '([^']+)'`,
		"The import path does not resolve to anything.\n"+
			"For packages: is it installed, and spelled exactly as in node_modules?\n"+
			"For relative paths: is the path right relative to this file, including the extension\n"+
			"rules of your bundler? Types can also be the issue; some packages need @types/<name>."),

	// --- javascript ---
	MustRule("javascript",
		`(?i)Cannot read propert(y|ies) of (undefined|null)`,
		"Some link in the property chain is undefined or null before the dot.\n"+
			"The message names the property you tried to read, not the thing that is missing;\n"+
			"the missing thing is just to the left of it. Log the chain one step at a time,\n"+
			"or use optional chaining (a?.b?.c) once you know a gap is legitimate."),
	MustRule("javascript",
		`(.+) is not a function`,
		"The value before the parentheses is not a function at the moment of the call.\n"+
			"Maybe the name is shadowed by a variable, maybe an import came back undefined,\n"+
			"maybe you are calling a method on the wrong object. typeof x right before the\n"+
			"call tells you what you actually have."),
	MustRule("javascript",
		`(\w+) is not defined`,
		"This name does not exist in any reachable scope.\n"+
			"Look for a typo first. If the name should come from another file, check the\n"+
			"import or script tag; if it is browser-only (window, document) the code may be\n"+
			"running in Node, where those globals do not exist."),

	// --- go ---
	MustRule("go",
		`undefined: (\S+)`,
		"The compiler cannot find a definition for this identifier.\n"+
			"Check the spelling and the package qualifier. Remember that only capitalized\n"+
			"names are exported; pkg.thing will not resolve if thing is lowercase in its package.\n"+
			"A missing import line produces exactly this error too."),
	MustRule("go",
		`declared (and|but) not used`,
		"Go refuses to compile a function with a variable that is never read.\n"+
			"Either use the value, delete the declaration, or assign to the blank identifier\n"+
			"(_ = x) while you are still sketching. Unused imports trigger the same rule."),
	MustRule("go",
		`cannot use (.+) \(.*\) as (.+) value`,
		"The value's type does not match what this position expects, and Go never converts implicitly.\n"+
			"If the conversion is legitimate, write it out explicitly, like int64(n) or string(b).\n"+
			"If an interface is expected, the concrete type may be missing a method of that interface;\n"+
			"the compiler's follow-up note usually names the missing method."),
	MustRule("go",
		`missing return`,
		"A function that declares result types has a path that falls off the end without returning.\n"+
			"Every branch must end in return (or panic). The unreturned path is often an else\n"+
			"branch you did not think about, or a loop the compiler cannot prove to be endless."),

	// --- rust ---
	MustRule("rust",
		`cannot borrow (.+) as mutable`,
		"The borrow checker stopped a mutation it cannot prove safe.\n"+
			"Either the binding is not declared mut, or a live immutable borrow overlaps the\n"+
			"mutation. Declaring \"let mut\" fixes the first case; shrinking the scope of the\n"+
			"earlier borrow (often just an extra block) fixes the second."),
	MustRule("rust",
		`(?i)borrowed value does not live long enough`,
		"A reference outlives the thing it points at.\n"+
			"The owner is dropped at the end of its scope while the reference is still in use.\n"+
			"Move the owner to a wider scope, or make the user own the data (clone, to_owned)\n"+
			"instead of borrowing it."),
	MustRule("rust",
		`mismatched types`,
		"The expression's type differs from what the context demands.\n"+
			"The compiler prints expected and found right below; read both, they differ in one\n"+
			"detail like &str vs String or i32 vs u32. Convert explicitly (into(), as, to_string())\n"+
			"at the point of use."),

	// --- java ---
	MustRule("java",
		`cannot find symbol`,
		"The compiler met a name it cannot resolve: a variable, method, or class.\n"+
			"The \"symbol:\" and \"location:\" lines under the error pin down which one.\n"+
			"Check spelling and capitalization, then the imports, then whether the class is\n"+
			"actually on the classpath of this compilation."),
	MustRule("java",
		`NullPointerException`,
		"Something on this line was null when a field or method was accessed through it.\n"+
			"Newer JVMs say exactly which part was null in the message; older ones leave you\n"+
			"to split the line into steps. Track where that value should have been assigned,\n"+
			"a forgotten initialization or an earlier method returning null is the usual story."),
	MustRule("java",
		`';' expected`,
		"The parser expected a semicolon before it could continue.\n"+
			"Look at the end of the previous statement, not the reported line itself.\n"+
			"An unbalanced parenthesis earlier on the line produces this message too."),

	// --- c ---
	MustRule("c",
		`implicit declaration of function '([^']+)'`,
		"This function is called before the compiler has seen a declaration for it.\n"+
			"Usually a missing #include for the header that declares it; man pages list the\n"+
			"right header at the top. For your own functions, add a prototype above the call\n"+
			"or move the definition up."),
	MustRule("c",
		`expected ';'`,
		"A semicolon is missing, almost always at the end of the previous line.\n"+
			"Struct and enum definitions need one after the closing brace as well, which is\n"+
			"the classic way to get this error pointing at an innocent-looking line."),
}
