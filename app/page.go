package app

// PageContext holds everything the counter sync needs from one rendered post page.
// Nil displays make the matching feature inert.
type PageContext struct {
	PostId      string
	ViewCounter CounterDisplay
	LikeCounter CounterDisplay
	LikeIcon    LikeIcon
	Credential  CredentialProvider
}
