package main

import (
	"fmt"
	"io"
)

func executeHelp(w io.Writer) {

	fmt.Fprintln(w, "Statements:")
	fmt.Fprintln(w, "\tPRINT item[, item ...]      print strings and expressions")
	fmt.Fprintln(w, "\tIF expr relop expr THEN stmt  conditional execution")
	fmt.Fprintln(w, "\tGOTO expr                   jump to a line")
	fmt.Fprintln(w, "\tGOSUB expr                  call a subroutine")
	fmt.Fprintln(w, "\tRETURN                      return from a subroutine")
	fmt.Fprintln(w, "\tLET var = expr              assign a variable")
	fmt.Fprintln(w, "\tINPUT var[, var ...]        read numbers from the user")
	fmt.Fprintln(w, "\tEND                         stop the running program")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "\tRUN                         execute the stored program")
	fmt.Fprintln(w, "\tLIST                        list the stored program")
	fmt.Fprintln(w, "\tCLEAR                       erase the stored program")
	fmt.Fprintln(w, "\tHELP                        print this summary")
	fmt.Fprintln(w, "\tBYE                         exit the interpreter")
	fmt.Fprintln(w, "\tDUMP                        dump interpreter state")
	fmt.Fprintln(w, "\tSTATS                       toggle execution statistics")
	fmt.Fprintln(w, "\tTRACE EXEC                  toggle statement tracing")
	fmt.Fprintln(w, "\tTRACE VARS [name ...]       toggle variable tracing")
	fmt.Fprintln(w, "A line starting with a number edits the stored program;")
	fmt.Fprintln(w, "a number on its own erases that line")
}
