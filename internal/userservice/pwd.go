package userservice

import "golang.org/x/crypto/bcrypt"

func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), 12)
	if err != nil {
		return err
	}

	p.hash = hash

	return nil
}
