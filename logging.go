package symtab

import "fmt"

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

func (log logging) prefixed(mark string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) {
		log.logf(mark, mess, args...)
	}
}
