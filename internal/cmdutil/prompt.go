package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints question and reads one line of input. The answer is yes
// unless the line starts with 'n' or 'N'.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	line = strings.TrimSpace(line)
	return !strings.HasPrefix(line, "n") && !strings.HasPrefix(line, "N")
}
