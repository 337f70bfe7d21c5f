package forth

// pictureQueue implements pictured numeric output's scratch buffer, spec.md
// §4's "<# # #S HOLD SIGN #>" family: digits are deposited into a small
// buffer from the low end upward as they are produced (least-significant
// digit first), then the buffer is reversed out by #>. A round-robin of
// scratch buffers (rather than one shared buffer) lets nested <# ... #>
// sequences -- e.g. one inside a DOES> body invoked while formatting
// another number -- not stomp on each other, mirroring the teacher's
// approach to its own scratch buffers.
type pictureQueue struct {
	bufs [][]byte
	next int
	cur  []byte // the buffer currently open between <# and #>
	neg  bool
}

// init allocates k round-robin buffers of the given byte size.
func (q *pictureQueue) init(k, size int) {
	q.bufs = make([][]byte, k)
	for i := range q.bufs {
		q.bufs[i] = make([]byte, 0, size)
	}
}

// begin opens a new pictured-output buffer (<#), selecting the next
// round-robin slot and recording whether the source value was negative.
func (q *pictureQueue) begin(neg bool) {
	q.cur = q.bufs[q.next][:0]
	q.next = (q.next + 1) % len(q.bufs)
	q.neg = neg
}

// hold deposits one character at the low (next-to-output) end of the
// buffer, spec's HOLD. The buffer is a fixed-size slot (see init), so a
// formatted result that would run past its capacity fails outright rather
// than silently growing past the borrowed scratch memory.
func (q *pictureQueue) hold(c byte) error {
	if len(q.cur) >= cap(q.cur) {
		return errc("HOLD", CodeBufOverflow)
	}
	q.cur = append(q.cur, c)
	return nil
}

// digit deposits the next least-significant digit of n (after dividing by
// base) using the standard 0-9a-z digit alphabet, spec's #.
func (q *pictureQueue) digit(n, base int) (int, error) {
	d := n % base
	if d < 0 {
		d = -d
	}
	n /= base
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if err := q.hold(alphabet[d]); err != nil {
		return 0, err
	}
	return n, nil
}

// sign appends a '-' if the original value was negative, spec's SIGN.
func (q *pictureQueue) sign() error {
	if q.neg {
		return q.hold('-')
	}
	return nil
}

// finish closes the buffer (#>) and returns the formatted string, in
// correct left-to-right order (the buffer was built least-significant
// digit first, so it is reversed here).
func (q *pictureQueue) finish() string {
	buf := q.cur
	out := make([]byte, len(buf))
	for i, c := range buf {
		out[len(buf)-1-i] = c
	}
	q.cur = nil
	return string(out)
}
