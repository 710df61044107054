package relay

// InferFormType picks the submission category. Predicates are checked in
// order: an explicit formType, then orderType "reports", then the presence
// of a birth date, and contact otherwise.
//
// Newsletter and consultation submissions look like contact forms unless
// they carry an explicit formType; there is no field that tells them apart.
func InferFormType(fd *FormData) FormType {
	switch {
	case fd.FormType != "":
		return FormType(fd.FormType)
	case fd.OrderType == string(FormReports):
		return FormReports
	case fd.BirthDate != "":
		return FormNatalChart
	default:
		return FormContact
	}
}

// copiesSubmitter reports whether the submitter gets a CC of the operator email.
func (f FormType) copiesSubmitter() bool {
	return f == FormNatalChart || f == FormReports
}

// repliesToSubmitter reports whether operator replies go to the submitter.
func (f FormType) repliesToSubmitter() bool {
	return f != FormNewsletter
}
